package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"aspkit/internal/source"
	"aspkit/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Channel string      `json:"channel"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Builtin string      `json:"builtin,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Trivia печатается только при showTrivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, showTrivia bool) error {
	n := 0
	for _, tok := range tokens {
		if tok.IsTrivia() && !showTrivia {
			continue
		}
		n++
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-6s %-15s", n, tok.Channel, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", runewidth.Truncate(tok.Text, 60, "..."))
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if name, ok := builtin(tok); ok {
			fmt.Fprintf(w, " (builtin %s)", name)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, showTrivia bool) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsTrivia() && !showTrivia {
			continue
		}
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Channel: tok.Channel.String(),
			Text:    tok.Text,
			Span:    tok.Span,
		}
		out.Builtin, _ = builtin(tok)
		output = append(output, out)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func builtin(tok token.Token) (string, bool) {
	if tok.Kind != token.Ident {
		return "", false
	}
	return token.BuiltinObject(tok.Name())
}
