package token

import (
	"aspkit/internal/source"
)

// Channel tells which layer produced a token.
type Channel uint8

const (
	// ChannelScript marks tokens of the script grammar, including delimiters.
	ChannelScript Channel = iota
	// ChannelMarkup marks opaque markup text.
	ChannelMarkup
)

func (c Channel) String() string {
	if c == ChannelMarkup {
		return "markup"
	}
	return "script"
}

// Token represents a single source token with its location.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Channel Channel
}

// IsTrivia reports whether the parser skips this token inside statements.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTerminator reports whether the token ends a statement.
func (t Token) IsTerminator() bool {
	return t.Kind == Newline || t.Kind == Colon || t.Kind == EOF
}

// Name returns the identifier text with [brackets] removed.
func (t Token) Name() string {
	if len(t.Text) >= 2 && t.Text[0] == '[' && t.Text[len(t.Text)-1] == ']' {
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}
