package lexer

import (
	"aspkit/internal/diag"
	"aspkit/internal/source"
	"aspkit/internal/token"
)

// Lexer tokenizes VBScript inside one region of a file: the interior of a
// script block, or a whole .vbs file. Every byte of the region ends up in
// exactly one token; trivia is returned like any other token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

// New lexes the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// NewInRange lexes only the bytes covered by sp.
func NewInRange(file *source.File, sp source.Span, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewRangeCursor(file, sp), opts: opts}
}

// Lex returns all tokens of sp without the trailing EOF.
func Lex(file *source.File, sp source.Span, opts Options) []token.Token {
	return NewInRange(file, sp, opts).All()
}

// Next возвращает следующий токен. После конца региона всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == ' ' || ch == '\t' || ch == '\f' || ch == '\v':
		tok = lx.scanWhitespace()

	case ch == '\n' || ch == '\r':
		tok = lx.scanNewline()

	case ch == '\'':
		tok = lx.scanComment()

	case ch == '_':
		tok = lx.scanUnderscore()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '&' && lx.isRadixNumber():
		tok = lx.scanRadixNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '#':
		tok = lx.scanDate()

	case ch == '[':
		tok = lx.scanBracketName()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.checkLength(&tok)
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer; the EOF token is not included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 16)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) checkLength(tok *token.Token) {
	switch tok.Kind {
	case token.Ident, token.StringLit, token.IntLit, token.FloatLit, token.HexLit, token.OctLit, token.DateLit:
	default:
		return
	}
	if tok.Span.Len() <= lx.opts.maxTokenLength() {
		return
	}
	lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds the maximum length")
	tok.Kind = token.Invalid
}
