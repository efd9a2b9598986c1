package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"aspkit/internal/diag"
	"aspkit/internal/lexer"
	"aspkit/internal/source"
	"aspkit/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки (как .vbs файл целиком)
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.vbs", []byte(input)))
	bag := diag.NewBag(0)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов без пробелов
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	all := lx.All()
	tokens := make([]token.Token, 0, len(all))
	for _, tok := range all {
		if tok.Kind != token.Whitespace {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ndiags: %d",
			len(expected), len(tokens), input, tokensToString(tokens), bag.Len())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	toks := expectTokens(t, "IF x THEN Else end if",
		token.KwIf, token.Ident, token.KwThen, token.KwElse, token.KwEnd, token.KwIf)
	if toks[0].Text != "IF" {
		t.Errorf("token text must keep source casing, got %q", toks[0].Text)
	}
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	expectTokens(t, "ending Endif dimension toy", token.Ident, token.Ident, token.Ident, token.Ident)
}

func TestIdentifiers(t *testing.T) {
	expectTokens(t, "a_b1 [my name] straße", token.Ident, token.Ident, token.Ident)
}

func TestOperatorsMaximalMunch(t *testing.T) {
	expectTokens(t, `a<>b<=c>=d<e>f=g & h\i^j Mod k`,
		token.Ident, token.NotEq, token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident,
		token.Lt, token.Ident, token.Gt, token.Ident, token.Eq, token.Ident, token.Amp, token.Ident,
		token.Backslash, token.Ident, token.Caret, token.Ident, token.KwMod, token.Ident)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntLit},
		{"3.14", token.FloatLit},
		{".5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"1.5E-3", token.FloatLit},
		{"&H1F", token.HexLit},
		{"&hff", token.HexLit},
		{"&O17", token.OctLit},
		{"&17", token.OctLit},
		{"1.", token.NumberInvalid},
		{"1e", token.NumberInvalid},
		{"1e+", token.NumberInvalid},
		{"12abc", token.NumberInvalid},
		{"&H", token.NumberInvalid},
		{"&H1G", token.NumberInvalid},
		{"1.2.3", token.NumberInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			toks := lx.All()
			if len(toks) != 1 {
				t.Fatalf("expected a single token, got %v", tokensToString(toks))
			}
			if toks[0].Kind != tt.kind || toks[0].Text != tt.input {
				t.Fatalf("got %v(%q), want %v", toks[0].Kind, toks[0].Text, tt.kind)
			}
			wantDiag := tt.kind == token.NumberInvalid
			if (bag.Len() == 1) != wantDiag {
				t.Fatalf("unexpected diagnostics count %d", bag.Len())
			}
			if wantDiag && bag.Items()[0].Code != diag.LexBadNumber {
				t.Fatalf("expected LexBadNumber, got %s", bag.Items()[0].Code.ID())
			}
		})
	}
}

func TestAmpersandConcatenation(t *testing.T) {
	expectTokens(t, `a & b`, token.Ident, token.Amp, token.Ident)
	expectTokens(t, `"x"&"y"`, token.StringLit, token.Amp, token.StringLit)
	expectTokens(t, `a&b`, token.Ident, token.Amp, token.Ident)
}

func TestStrings(t *testing.T) {
	toks := expectTokens(t, `"say ""hi""" & ""`, token.StringLit, token.Amp, token.StringLit)
	if toks[0].Text != `"say ""hi"""` {
		t.Fatalf("escaped quote handling: %q", toks[0].Text)
	}
}

func TestUnterminatedStringStopsAtEndOfLine(t *testing.T) {
	lx, bag := makeTestLexer("x = \"abc\r\ny = 1")
	toks := lx.All()
	want := []token.Kind{
		token.Ident, token.Whitespace, token.Eq, token.Whitespace, token.Invalid, token.Newline,
		token.Ident, token.Whitespace, token.Eq, token.Whitespace, token.IntLit,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v", tokensToString(toks))
	}
	for i := range want {
		if toks[i].Kind != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Kind, want[i])
		}
	}
	if toks[4].Text != `"abc` || toks[5].Text != "\r\n" {
		t.Fatalf("error token must end before the newline: %q %q", toks[4].Text, toks[5].Text)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected one LexUnterminatedString")
	}
}

func TestCommentsAndRem(t *testing.T) {
	toks := expectTokens(t, "a ' note\nREM whole line\nremark = 1",
		token.Ident, token.Comment, token.Newline, token.Comment, token.Newline,
		token.Ident, token.Eq, token.IntLit)
	if toks[3].Text != "REM whole line" {
		t.Fatalf("rem comment text: %q", toks[3].Text)
	}
}

func TestDates(t *testing.T) {
	expectTokens(t, "d = #1/1/2000#", token.Ident, token.Eq, token.DateLit)
	expectTokens(t, "d = #1/1\n", token.Ident, token.Eq, token.Invalid, token.Newline)
}

func TestLineContinuation(t *testing.T) {
	toks := expectTokens(t, "a = b _  \r\n  & c", token.Ident, token.Eq, token.Ident, token.LineContinuation, token.Amp, token.Ident)
	if toks[3].Text != "_  \r\n" {
		t.Fatalf("continuation text: %q", toks[3].Text)
	}
	expectTokens(t, "a _ b", token.Ident, token.Invalid, token.Ident)
}

func TestNewlineForms(t *testing.T) {
	expectTokens(t, "a\nb\r\nc\rd",
		token.Ident, token.Newline, token.Ident, token.Newline, token.Ident, token.Newline, token.Ident)
}

func TestUnknownCharacters(t *testing.T) {
	lx, bag := makeTestLexer("a $ § b")
	toks := lx.All()
	invalid := 0
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			invalid++
		}
	}
	if invalid != 2 || bag.Len() != 2 {
		t.Fatalf("expected 2 invalid tokens and diagnostics, got %d/%d: %v", invalid, bag.Len(), tokensToString(toks))
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"Dim a, b(10)\r\nIf a <> b Then Response.Write \"x\" & a _\n & b Else c = &H1F\n",
		"\"open\n#bad\n[x\n1.e5 $%~ \xff\xfe",
		"",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		var b strings.Builder
		var off uint32
		for _, tok := range lx.All() {
			if tok.Span.Start != off {
				t.Fatalf("gap before %v at %d", tok.Kind, tok.Span.Start)
			}
			if tok.Span.Empty() {
				t.Fatalf("empty token %v", tok.Kind)
			}
			b.WriteString(tok.Text)
			off = tok.Span.End
		}
		if b.String() != in {
			t.Fatalf("round trip mismatch:\n%q\n%q", b.String(), in)
		}
	}
}

func TestRangeLexing(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.asp", []byte("<p><% x = 1 %></p>")))
	toks := lexer.Lex(file, source.Span{File: file.ID, Start: 5, End: 12}, lexer.Options{})
	if len(toks) == 0 || toks[0].Span.Start != 5 || toks[len(toks)-1].Span.End != 12 {
		t.Fatalf("range tokens: %v", tokensToString(toks))
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "x" {
		t.Fatalf("unexpected tokens: %v", tokensToString(toks))
	}
}

func TestTokenTooLong(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.vbs", []byte(strings.Repeat("a", 11)+" b")))
	bag := diag.NewBag(0)
	toks := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, MaxTokenLength: 10}).All()
	if toks[0].Kind != token.Invalid || toks[len(toks)-1].Kind != token.Ident {
		t.Fatalf("unexpected tokens: %v", tokensToString(toks))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Text != "a" || lx.Next().Text != "a" {
		t.Fatalf("peek must not consume")
	}
	lx.All()
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("lexer must keep returning EOF")
	}
}
