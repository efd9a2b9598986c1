package fuzztests

import (
	"context"
	"strings"
	"testing"
	"time"

	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParser checks that the tree covers every input byte.
func FuzzParser(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.asp", input))

		tree := parser.ParseFile(file, parser.Options{MaxErrors: 128})
		if got := tree.Green().Width(); got != file.Len() {
			t.Fatalf("tree width %d, input %d bytes: %q", got, file.Len(), truncateForLog(input, 200))
		}
		if tree.Source() != string(file.Content) {
			t.Fatalf("tree text differs from input %q", truncateForLog(input, 200))
		}
		if err := testkit.CheckTreeInvariants(tree); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("<% If If If If %>"))
	f.Add([]byte("<% Do Do Do Loop %>"))
	f.Add([]byte("<% x = ((((((((( %>"))
	f.Add([]byte("<% Sub Sub Sub End Sub %>"))
	f.Add([]byte("<% Select Case : Case : Case Else : %>"))
	f.Add([]byte("<% x = " + strings.Repeat("(", 20_000) + " %>"))
	f.Add([]byte("<% " + strings.Repeat("If a Then\n", 5_000) + "%>"))
	f.Add([]byte("<%= " + strings.Repeat("Not -", 5_000) + "1 %>"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.asp", input))
			_ = parser.ParseFile(file, parser.Options{MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
