package mode

import (
	"aspkit/internal/source"
)

// Kind classifies a span.
type Kind uint8

const (
	// Markup is opaque template text.
	Markup Kind = iota
	// StatementBlock is <% ... %>.
	StatementBlock
	// ExpressionEcho is <%= ... %>.
	ExpressionEcho
	// Directive is <%@ ... %>.
	Directive
	// Script is a whole standalone script file without delimiters (.vbs).
	Script
)

func (k Kind) String() string {
	switch k {
	case Markup:
		return "markup"
	case StatementBlock:
		return "statement-block"
	case ExpressionEcho:
		return "expression-echo"
	case Directive:
		return "directive"
	case Script:
		return "script"
	}
	return "unknown"
}

// IsScript reports whether spans of this kind carry script tokens.
func (k Kind) IsScript() bool { return k != Markup }

// Span is one classified region. Range includes the delimiters.
type Span struct {
	Kind         Kind
	Range        source.Span
	Unterminated bool
}

// OpenLen returns the byte length of the opening delimiter.
func (s Span) OpenLen() uint32 {
	switch s.Kind {
	case StatementBlock:
		return 2
	case ExpressionEcho, Directive:
		return 3
	default:
		return 0
	}
}

// CloseLen returns the byte length of the closing delimiter.
func (s Span) CloseLen() uint32 {
	switch s.Kind {
	case StatementBlock, ExpressionEcho, Directive:
		if s.Unterminated {
			return 0
		}
		return 2
	default:
		return 0
	}
}

// Interior returns the range between the delimiters.
func (s Span) Interior() source.Span {
	return source.Span{
		File:  s.Range.File,
		Start: s.Range.Start + s.OpenLen(),
		End:   s.Range.End - s.CloseLen(),
	}
}

// KindForOpener returns the block kind selected by the byte following "<%".
// ok is false at end of input.
func KindForOpener(next byte, ok bool) Kind {
	if !ok {
		return StatementBlock
	}
	switch next {
	case '=':
		return ExpressionEcho
	case '@':
		return Directive
	default:
		return StatementBlock
	}
}
