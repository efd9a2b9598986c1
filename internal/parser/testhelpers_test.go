package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"aspkit/internal/diag"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	return parser.ParseText(fs, "test.asp", src, parser.Options{})
}

func diagnosticsSummary(ds []diag.Diagnostic) string {
	if len(ds) == 0 {
		return "<none>"
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// statements returns the top-level statement nodes of span i.
func statements(t *testing.T, tr *syntax.Tree, i int) []syntax.NodeID {
	t.Helper()
	block, ok := tr.ChildOfKind(tr.SpanNode(i), syntax.Block)
	if !ok {
		t.Fatalf("span %d has no Block:\n%s", i, tr.DumpNode(tr.SpanNode(i)))
	}
	return tr.ChildNodes(block)
}

func kinds(tr *syntax.Tree, ids []syntax.NodeID) []syntax.NodeKind {
	out := make([]syntax.NodeKind, len(ids))
	for i, id := range ids {
		out[i] = tr.Kind(id)
	}
	return out
}

func tokenText(tr *syntax.Tree) string {
	var b strings.Builder
	for _, tok := range tr.Tokens() {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// sexpr renders an expression subtree with explicit grouping.
func sexpr(tr *syntax.Tree, n syntax.NodeID) string {
	kids := tr.ChildNodes(n)
	switch tr.Kind(n) {
	case syntax.BinaryExpression:
		return "(" + tr.ChildTokens(n)[0].Text + " " + sexpr(tr, kids[0]) + " " + sexpr(tr, kids[1]) + ")"
	case syntax.UnaryExpression:
		return "(" + tr.ChildTokens(n)[0].Text + " " + sexpr(tr, kids[0]) + ")"
	case syntax.ParenthesizedExpression:
		return "[" + sexpr(tr, kids[0]) + "]"
	default:
		return tr.Text(n)
	}
}

// sameGreen compares two green trees by shape, kinds and widths.
func sameGreen(a, b *syntax.GreenNode) bool {
	if a.Kind() != b.Kind() || a.Width() != b.Width() || len(a.Children()) != len(b.Children()) {
		return false
	}
	for i, ca := range a.Children() {
		cb := b.Children()[i]
		if (ca.Node == nil) != (cb.Node == nil) {
			return false
		}
		if ca.Node != nil {
			if !sameGreen(ca.Node, cb.Node) {
				return false
			}
			continue
		}
		if ca.Token != cb.Token {
			return false
		}
	}
	return true
}
