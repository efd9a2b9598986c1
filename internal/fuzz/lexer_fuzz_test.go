package fuzztests

import (
	"testing"

	"aspkit/internal/diag"
	"aspkit/internal/lexer"
	"aspkit/internal/mode"
	"aspkit/internal/source"
	"aspkit/internal/token"
)

func FuzzLexer(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.asp", input))

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		for _, s := range mode.Scan(file, mode.Options{}) {
			if s.Kind == mode.Markup {
				continue
			}
			in := s.Interior()
			lx := lexer.NewInRange(file, in, lexer.Options{Reporter: reporter, MaxTokenLength: 256})
			prev := in.Start
			for {
				tok := lx.Next()
				if tok.Span.Start < prev || tok.Span.End > in.End {
					t.Fatalf("token %v out of order or outside %v", tok.Span, in)
				}
				prev = tok.Span.End
				if tok.Kind == token.EOF {
					break
				}
			}
		}
	})
}
