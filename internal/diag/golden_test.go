package diag

import (
	"testing"

	"aspkit/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/site")
	file := fs.Add("/site/inc/header.asp", []byte("<% If x Then\n%>\n"), 0)

	diags := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: file, Start: 3, End: 5}, "first line\nsecond").
			WithNote(source.Span{File: file, Start: 13, End: 15}, "note line"),
		New(SevWarning, BlkUnclosed, source.Span{File: file, Start: 3, End: 5}, "'If' is never closed"),
	}

	expected := "error SYN2001 inc/header.asp:1:4 first line second\n" +
		"warning BLK2502 inc/header.asp:1:4 'If' is never closed\n" +
		"note SYN2001 inc/header.asp:2:1 note line"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitSortAndDedup(t *testing.T) {
	bag := NewBag(3)
	sp := func(s, e uint32) source.Span { return source.Span{Start: s, End: e} }

	bag.Add(NewError(SynUnexpectedToken, sp(10, 12), "b"))
	bag.Add(New(SevWarning, BlkUnclosed, sp(0, 2), "a"))
	bag.Add(NewError(SynUnexpectedToken, sp(10, 12), "b again"))
	if bag.Add(NewError(LexUnknownChar, sp(1, 2), "over limit")) {
		t.Fatalf("bag must respect its limit")
	}

	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
	if bag.Items()[0].Code != BlkUnclosed {
		t.Fatalf("expected earliest span first, got %s", bag.Items()[0].Code.ID())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("severity queries")
	}

	bag.Escalate()
	if bag.Items()[0].Severity != SevError {
		t.Fatalf("Escalate must turn warnings into errors")
	}
}

func TestCodeIDRanges(t *testing.T) {
	cases := map[Code]string{
		LexBadNumber:         "LEX1003",
		ScnUnterminatedBlock: "SCN1501",
		SynExpectThen:        "SYN2004",
		BlkUnclosed:          "BLK2502",
		IOLoadFileError:      "IO4001",
		UnknownCode:          "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d: got %s, want %s", c, got, want)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	sp := source.Span{Start: 1, End: 2}
	b := ReportWarning(r, BlkUnclosed, sp, "'If' block is never closed").
		WithNote(source.Span{Start: 5, End: 7}, "enclosing block ends here")
	b.Emit()
	b.Emit()
	ReportError(nil, LexUnknownChar, sp, "dropped").Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevWarning || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Severity.Escalated() != SevError || SevInfo.Escalated() != SevInfo {
		t.Fatalf("Escalated must only raise warnings")
	}
}
