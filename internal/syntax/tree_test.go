package syntax_test

import (
	"strings"
	"testing"

	"aspkit/internal/diag"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	return parser.ParseText(source.NewFileSet(), "page.asp", src, parser.Options{})
}

func TestTreeRangesAndParents(t *testing.T) {
	src := "<p><% Dim a : a = 1 %></p>"
	tr := parse(t, src)

	root := tr.Root()
	if got := tr.Range(root); got.Start != 0 || got.End != uint32(len(src)) {
		t.Fatalf("root range = %v", got)
	}
	if tr.Parent(root) != syntax.NoNode {
		t.Fatalf("root has a parent")
	}

	// дети покрывают родителя без дыр
	tr.Walk(root, func(id syntax.NodeID, _ int) bool {
		off := tr.Range(id).Start
		for _, c := range tr.Children(id) {
			var sp source.Span
			if c.IsNode() {
				sp = tr.Range(c.Node)
				if tr.Parent(c.Node) != id {
					t.Fatalf("parent link broken for %s", tr.Kind(c.Node))
				}
			} else {
				sp = tr.Token(c.Token).Span
				if tr.TokenParent(c.Token) != id {
					t.Fatalf("token parent broken")
				}
			}
			if sp.Start != off {
				t.Fatalf("gap before %v inside %s", sp, tr.Kind(id))
			}
			off = sp.End
		}
		if len(tr.Children(id)) > 0 && off != tr.Range(id).End {
			t.Fatalf("%s children end at %d, node ends at %d", tr.Kind(id), off, tr.Range(id).End)
		}
		return true
	})
}

func TestNodeAtAndAncestor(t *testing.T) {
	src := "<% If x Then y = 1 %>"
	tr := parse(t, src)

	off := uint32(strings.Index(src, "y"))
	n := tr.NodeAt(off)
	if tr.Kind(n) != syntax.NameExpression || tr.Text(n) != "y" {
		t.Fatalf("NodeAt = %s %q", tr.Kind(n), tr.Text(n))
	}
	if _, ok := tr.Ancestor(n, syntax.VariableAssignment); !ok {
		t.Fatalf("no VariableAssignment ancestor")
	}
	ifNode, ok := tr.Ancestor(n, syntax.IfStatement)
	if !ok {
		t.Fatalf("no IfStatement ancestor")
	}
	first, ok := tr.FirstToken(ifNode)
	if !ok || tr.Token(first).Kind != token.KwIf {
		t.Fatalf("first token of If = %v", tr.Token(first))
	}
	if got := tr.SpanIndex(n); got != 0 {
		t.Fatalf("SpanIndex = %d", got)
	}
}

func TestTokensRoundTrip(t *testing.T) {
	src := "a<%= b & \"c\" %>\r\n<%@ Language=VBScript %><% ' note\n%>"
	tr := parse(t, src)
	var b strings.Builder
	for _, tok := range tr.Tokens() {
		b.WriteString(tok.Text)
		if tok.Kind == token.MarkupText && tok.Channel != token.ChannelMarkup {
			t.Fatalf("markup token on script channel")
		}
	}
	if b.String() != src {
		t.Fatalf("round-trip mismatch: %q", b.String())
	}
}

func TestAssembleRebasesDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.asp", []byte("xx<% a = %>"))
	file := fs.Get(id)

	tr := parser.ParseFile(file, parser.Options{})
	ds := tr.Diagnostics()
	if len(ds) != 1 {
		t.Fatalf("want 1 diagnostic, got %d", len(ds))
	}
	// относительная позиция внутри спана
	rel := tr.Part(1).Diags[0].Primary
	if rel.Start+tr.Spans()[1].Range.Start != ds[0].Primary.Start {
		t.Fatalf("rebase mismatch: rel %v abs %v", rel, ds[0].Primary)
	}
	if ds[0].Primary.File != id {
		t.Fatalf("diagnostic file = %d", ds[0].Primary.File)
	}

	extra := diag.NewError(diag.BlkUnclosed, source.Span{File: id, Start: 0, End: 1}, "x")
	tr2 := tr.WithDiagnostics([]diag.Diagnostic{extra})
	if len(tr2.Diagnostics()) != 2 || tr2.Green() != tr.Green() {
		t.Fatalf("WithDiagnostics must keep green and add one diagnostic")
	}
	if tr2.Diagnostics()[0].Code != diag.BlkUnclosed {
		t.Fatalf("diagnostics not ordered by position")
	}
}

func TestDump(t *testing.T) {
	tr := parse(t, "<%x%>")
	want := strings.Join([]string{
		"File@0..5",
		"  ScriptBlock@0..5",
		`    <%@0..2 "<%"`,
		"    Block@2..3",
		"      CallStatement@2..3",
		"        NameExpression@2..3",
		`          Ident@2..3 "x"`,
		`    %>@3..5 "%>"`,
		"",
	}, "\n")
	if got := tr.Dump(); got != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestSharedGreenAcrossTrees(t *testing.T) {
	tr := parse(t, "<% a %>b")
	g := tr.Part(0).Green
	other := syntax.Assemble(tr.File(), tr.Spans(), []syntax.SpanTree{tr.Part(0), tr.Part(1)}, nil)
	if other.Part(0).Green != g {
		t.Fatalf("green not shared")
	}
	if other.NodeCount() != tr.NodeCount() {
		t.Fatalf("node count differs: %d vs %d", other.NodeCount(), tr.NodeCount())
	}
}
