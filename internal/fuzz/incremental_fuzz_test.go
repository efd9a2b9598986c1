package fuzztests

import (
	"testing"

	"aspkit/internal/incremental"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/testkit"
)

// FuzzIncremental applies one edit and compares the result
// with a parse from scratch.
func FuzzIncremental(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s), uint16(3), uint16(1), "x")
		f.Add([]byte(s), uint16(0), uint16(0), "<%")
		f.Add([]byte(s), uint16(5), uint16(2), "%>")
	}
	f.Fuzz(func(t *testing.T, input []byte, at, width uint16, text string) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.asp", input))
		prev := parser.ParseFile(file, parser.Options{})

		n := file.Len()
		start := min(uint32(at), n)
		end := min(start+uint32(width), n)
		e := incremental.Edit{Start: start, End: end, Text: text}

		got, _, err := incremental.ApplyEdit(prev, e)
		if err != nil {
			t.Fatalf("edit %s rejected: %v", e, err)
		}
		if err := testkit.CheckTreeInvariants(got); err != nil {
			t.Fatalf("edit %s: %v", e, err)
		}
		want := parser.ParseFile(got.File(), parser.Options{})
		if want.Dump() != got.Dump() {
			t.Fatalf("edit %s on %q: incremental tree differs\nwant:\n%s\ngot:\n%s",
				e, truncateForLog(input, 200), want.Dump(), got.Dump())
		}
	})
}
