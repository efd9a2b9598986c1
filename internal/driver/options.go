package driver

import (
	"aspkit/internal/lexer"
	"aspkit/internal/parser"
	"aspkit/internal/trace"
)

// DefaultExtensions are the files picked up when walking a directory.
var DefaultExtensions = []string{".asp", ".inc", ".asa", ".vbs"}

// Options drive every batch operation.
type Options struct {
	// MaxDiagnostics caps diagnostics per file (0 = no limit).
	MaxDiagnostics int
	MaxTokenLength int
	// MaxDepth bounds parser nesting; 0 keeps parser.DefaultMaxDepth.
	MaxDepth int
	// Jobs limits parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// Codepage decodes input before scanning ("" keeps bytes as-is).
	Codepage   string
	Extensions []string
	// WarningsAsErrors raises every warning to an error.
	WarningsAsErrors bool
	// Cache, when set, lets Check skip files whose content it has seen.
	Cache    *DiskCache
	Progress ProgressSink
	Timings  bool
	Tracer   trace.Tracer
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

// Accepts reports whether a directory walk would pick up path.
func (o Options) Accepts(path string) bool {
	return hasExtension(path, o.extensions())
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{MaxTokenLength: o.MaxTokenLength, MaxDepth: o.MaxDepth, Tracer: o.Tracer}
}

func (o Options) lexerOptions() lexer.Options {
	return lexer.Options{MaxTokenLength: o.MaxTokenLength}
}
