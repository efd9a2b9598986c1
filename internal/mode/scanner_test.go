package mode

import (
	"strings"
	"testing"

	"aspkit/internal/diag"
	"aspkit/internal/source"
)

type want struct {
	kind Kind
	text string
	open bool // unterminated
}

func scanString(t *testing.T, src string) ([]Span, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.asp", []byte(src)))
	bag := diag.NewBag(0)
	spans := Scan(f, Options{Reporter: diag.BagReporter{Bag: bag}})
	checkPartition(t, f, spans)
	return spans, f, bag
}

func checkPartition(t *testing.T, f *source.File, spans []Span) {
	t.Helper()
	var b strings.Builder
	var off uint32
	for i, sp := range spans {
		if sp.Range.Start != off {
			t.Fatalf("span %d starts at %d, want %d", i, sp.Range.Start, off)
		}
		if sp.Range.Empty() {
			t.Fatalf("span %d is empty", i)
		}
		b.WriteString(f.Text(sp.Range))
		off = sp.Range.End
	}
	if off != f.Len() || b.String() != string(f.Content) {
		t.Fatalf("spans do not reproduce the input")
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []want
	}{
		{"markup only", "<p>hi</p>", []want{{Markup, "<p>hi</p>", false}}},
		{"single block", "<% a = 1 %>", []want{{StatementBlock, "<% a = 1 %>", false}}},
		{"echo", "x<%= name %>y", []want{
			{Markup, "x", false}, {ExpressionEcho, "<%= name %>", false}, {Markup, "y", false},
		}},
		{"directive", `<%@ Language="VBScript" %>`, []want{{Directive, `<%@ Language="VBScript" %>`, false}}},
		{"adjacent blocks", "<%a%><%b%>", []want{{StatementBlock, "<%a%>", false}, {StatementBlock, "<%b%>", false}}},
		{"nested opener is literal", "<% a <% b %>c", []want{{StatementBlock, "<% a <% b %>", false}, {Markup, "c", false}}},
		{"close in markup is text", "a %> b", []want{{Markup, "a %> b", false}}},
		{"close inside string still closes", `<% s = "%>" %>`, []want{{StatementBlock, `<% s = "%>`, false}, {Markup, `" %>`, false}}},
		{"unterminated", "<p><% dim x", []want{{Markup, "<p>", false}, {StatementBlock, "<% dim x", true}}},
		{"bare opener at eof", "a<%", []want{{Markup, "a", false}, {StatementBlock, "<%", true}}},
		{"opener does not close itself", "<%>x", []want{{StatementBlock, "<%>x", true}}},
		{"empty echo", "<%=%>", []want{{ExpressionEcho, "<%=%>", false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, f, _ := scanString(t, tt.src)
			if len(spans) != len(tt.want) {
				t.Fatalf("got %d spans, want %d: %+v", len(spans), len(tt.want), spans)
			}
			for i, w := range tt.want {
				sp := spans[i]
				if sp.Kind != w.kind || f.Text(sp.Range) != w.text || sp.Unterminated != w.open {
					t.Errorf("span %d = %s %q open=%v; want %s %q open=%v",
						i, sp.Kind, f.Text(sp.Range), sp.Unterminated, w.kind, w.text, w.open)
				}
			}
		})
	}
}

func TestInterior(t *testing.T) {
	spans, f, _ := scanString(t, "<%= a %><%@ x %><% b")
	got := []string{f.Text(spans[0].Interior()), f.Text(spans[1].Interior()), f.Text(spans[2].Interior())}
	want := []string{" a ", " x ", " b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interior %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnterminatedBlockReportsOnce(t *testing.T) {
	_, f, bag := scanString(t, "<html>\n<% dim x")
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.ScnUnterminatedBlock {
		t.Fatalf("unexpected code %s", d.Code.ID())
	}
	if d.Primary.Start != f.Len() {
		t.Fatalf("diagnostic must sit at end of file, got %d", d.Primary.Start)
	}
	if len(d.Notes) != 1 || f.Text(d.Notes[0].Span) != "<%" {
		t.Fatalf("expected note on the opener, got %+v", d.Notes)
	}
}

func TestScriptFileIsOneSpan(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.vbs", []byte("Dim a\n' <% not a block %>\n")))
	spans := Scan(f, Options{})
	if len(spans) != 1 || spans[0].Kind != Script || spans[0].Range != f.Span() {
		t.Fatalf("unexpected spans %+v", spans)
	}
	if spans[0].Interior() != f.Span() {
		t.Fatalf("script interior must be the whole file")
	}
}

func TestEmptyInput(t *testing.T) {
	spans, _, _ := scanString(t, "")
	if len(spans) != 0 {
		t.Fatalf("empty input yields no spans, got %+v", spans)
	}
}
