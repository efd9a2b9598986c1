package lexer

import (
	"aspkit/internal/diag"
	"aspkit/internal/source"
)

// DefaultMaxTokenLength caps identifiers, literals and names.
const DefaultMaxTokenLength = 10000

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// MaxTokenLength overrides DefaultMaxTokenLength when positive.
	MaxTokenLength int
}

func (o Options) maxTokenLength() uint32 {
	if o.MaxTokenLength > 0 {
		return source.MustOffset(o.MaxTokenLength)
	}
	return DefaultMaxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
