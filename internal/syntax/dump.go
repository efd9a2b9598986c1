package syntax

import (
	"fmt"
	"strings"
)

// Dump renders the tree as an indented outline, one element per line:
//
//	File@0..11
//	  ScriptBlock@0..11
//	    <%@0..2 "<%"
func (t *Tree) Dump() string {
	var b strings.Builder
	t.dump(&b, t.Root(), 0)
	return b.String()
}

// DumpNode renders the subtree of n.
func (t *Tree) DumpNode(n NodeID) string {
	var b strings.Builder
	t.dump(&b, n, 0)
	return b.String()
}

func (t *Tree) dump(b *strings.Builder, n NodeID, depth int) {
	sp := t.Range(n)
	fmt.Fprintf(b, "%s%s@%d..%d\n", strings.Repeat("  ", depth), t.Kind(n), sp.Start, sp.End)
	for _, c := range t.Children(n) {
		if c.IsNode() {
			t.dump(b, c.Node, depth+1)
			continue
		}
		tok := t.Token(c.Token)
		fmt.Fprintf(b, "%s%s@%d..%d %q\n", strings.Repeat("  ", depth+1), tok.Kind, tok.Span.Start, tok.Span.End, tok.Text)
	}
}
