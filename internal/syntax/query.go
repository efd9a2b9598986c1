package syntax

import (
	"aspkit/internal/token"
)

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the children of the visited node.
func (t *Tree) Walk(n NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(n, 0, fn)
}

func (t *Tree) walk(n NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range t.Children(n) {
		if c.IsNode() {
			t.walk(c.Node, depth+1, fn)
		}
	}
}

// FindAll returns every node of the given kind in document order.
func (t *Tree) FindAll(kind NodeKind) []NodeID {
	var out []NodeID
	t.Walk(t.Root(), func(id NodeID, _ int) bool {
		if t.Kind(id) == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

// NodeAt returns the deepest node whose range contains off.
// Offsets at the very end of the file map to the root's last descendant.
func (t *Tree) NodeAt(off uint32) NodeID {
	n := t.Root()
	for {
		next := NoNode
		for _, c := range t.Children(n) {
			if !c.IsNode() {
				continue
			}
			sp := t.Range(c.Node)
			if sp.Contains(off) || (off == sp.End && sp.End == t.Range(t.Root()).End && !sp.Empty()) {
				next = c.Node
				break
			}
		}
		if next == NoNode {
			return n
		}
		n = next
	}
}

// FirstToken returns the first non-trivia token inside n.
func (t *Tree) FirstToken(n NodeID) (TokenID, bool) {
	for _, c := range t.Children(n) {
		if c.IsNode() {
			if id, ok := t.FirstToken(c.Node); ok {
				return id, true
			}
			continue
		}
		if !t.Token(c.Token).IsTrivia() {
			return c.Token, true
		}
	}
	return NoToken, false
}

// ChildTokens returns the direct non-trivia tokens of n.
func (t *Tree) ChildTokens(n NodeID) []token.Token {
	var out []token.Token
	for _, c := range t.Children(n) {
		if c.IsNode() {
			continue
		}
		if tok := t.Token(c.Token); !tok.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}

// ChildOfKind returns the first direct child node of the given kind.
func (t *Tree) ChildOfKind(n NodeID, kind NodeKind) (NodeID, bool) {
	for _, c := range t.Children(n) {
		if c.IsNode() && t.Kind(c.Node) == kind {
			return c.Node, true
		}
	}
	return NoNode, false
}

// Ancestor returns the nearest ancestor of n (n excluded) with the given kind.
func (t *Tree) Ancestor(n NodeID, kind NodeKind) (NodeID, bool) {
	for p := t.Parent(n); p != NoNode; p = t.Parent(p) {
		if t.Kind(p) == kind {
			return p, true
		}
	}
	return NoNode, false
}

// SpanIndex returns the index of the span containing n.
func (t *Tree) SpanIndex(n NodeID) int {
	for p := n; p != NoNode; p = t.Parent(p) {
		if t.Parent(p) == t.Root() {
			for i, s := range t.spanNodes {
				if s == p {
					return i
				}
			}
		}
	}
	return -1
}
