package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

// CheckTreeInvariants runs the structural invariants on a parsed tree:
// 1) the root covers the whole file and belongs to it
// 2) children of every node tile the node range in order with no gaps
// 3) every diagnostic span lies inside the file
func CheckTreeInvariants(t *syntax.Tree) error {
	if t == nil {
		return fmt.Errorf("nil tree")
	}
	sf := t.File()
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	root := t.Root()
	rs := t.Range(root)
	if rs.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", rs.File, sf.ID)
	}
	if rs.Start != 0 || rs.End != size {
		return fmt.Errorf("root span %d..%d does not cover file of %d bytes", rs.Start, rs.End, size)
	}
	if n := len(t.ChildNodes(root)); n != len(t.Spans()) {
		return fmt.Errorf("root has %d children for %d spans", n, len(t.Spans()))
	}
	if err := checkNode(t, root); err != nil {
		return err
	}

	for _, d := range t.Diagnostics() {
		sp := d.Primary
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("diagnostic %s span %d..%d outside file of %d bytes",
				d.Code.ID(), sp.Start, sp.End, size)
		}
	}
	return nil
}

func checkNode(t *syntax.Tree, n syntax.NodeID) error {
	sp := t.Range(n)
	off := sp.Start
	for _, c := range t.Children(n) {
		var cs source.Span
		if c.IsNode() {
			cs = t.Range(c.Node)
			if p := t.Parent(c.Node); p != n {
				return fmt.Errorf("%s at %d: parent link %d, want %d", t.Kind(c.Node), cs.Start, p, n)
			}
		} else {
			if !c.Token.IsValid() {
				return fmt.Errorf("%s at %d: element with neither node nor token", t.Kind(n), sp.Start)
			}
			cs = t.Token(c.Token).Span
		}
		if cs.Start != off {
			return fmt.Errorf("%s at %d: child starts at %d, want %d", t.Kind(n), sp.Start, cs.Start, off)
		}
		if cs.End < cs.Start || cs.End > sp.End {
			return fmt.Errorf("%s at %d: child %d..%d escapes %d..%d",
				t.Kind(n), sp.Start, cs.Start, cs.End, sp.Start, sp.End)
		}
		off = cs.End
		if c.IsNode() {
			if err := checkNode(t, c.Node); err != nil {
				return err
			}
		}
	}
	if off != sp.End {
		return fmt.Errorf("%s at %d: children end at %d, node ends at %d", t.Kind(n), sp.Start, off, sp.End)
	}
	return nil
}
