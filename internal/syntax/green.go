package syntax

import (
	"aspkit/internal/source"
	"aspkit/internal/token"
)

// GreenToken is a token without position: kind and width only.
type GreenToken struct {
	Kind  token.Kind
	Width uint32
}

// GreenChild is either a node (Node != nil) or a token.
type GreenChild struct {
	Node  *GreenNode
	Token GreenToken
}

// Width returns the byte width of the child.
func (c GreenChild) Width() uint32 {
	if c.Node != nil {
		return c.Node.width
	}
	return c.Token.Width
}

// GreenNode is an immutable, position-free syntax node.
// Never mutate a GreenNode after construction: it may be shared by
// several trees.
type GreenNode struct {
	kind     NodeKind
	width    uint32
	children []GreenChild
}

// NewGreenNode builds a node and computes its width.
func NewGreenNode(kind NodeKind, children []GreenChild) *GreenNode {
	var w uint32
	for _, c := range children {
		w += c.Width()
	}
	return &GreenNode{kind: kind, width: w, children: children}
}

func (g *GreenNode) Kind() NodeKind { return g.kind }

func (g *GreenNode) Width() uint32 { return g.width }

// Children returns the children. Do not modify the slice.
func (g *GreenNode) Children() []GreenChild { return g.children }

// CountNodes returns the number of nodes in the subtree, g included.
func (g *GreenNode) CountNodes() int {
	n := 1
	for _, c := range g.children {
		if c.Node != nil {
			n += c.Node.CountNodes()
		}
	}
	return n
}

// Builder assembles a green tree from start/token/finish calls.
type Builder struct {
	stack []builderFrame
	root  *GreenNode
}

type builderFrame struct {
	kind     NodeKind
	children []GreenChild
}

// StartNode opens a node; tokens and nodes that follow become its children.
func (b *Builder) StartNode(kind NodeKind) {
	b.stack = append(b.stack, builderFrame{kind: kind})
}

// Token appends a token to the innermost open node.
func (b *Builder) Token(kind token.Kind, width uint32) {
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, GreenChild{Token: GreenToken{Kind: kind, Width: width}})
}

// TokenFor appends tok using its span width.
func (b *Builder) TokenFor(tok token.Token) {
	b.Token(tok.Kind, tok.Span.Len())
}

// Node appends an already built green node (reused subtree).
func (b *Builder) Node(g *GreenNode) {
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, GreenChild{Node: g})
}

// FinishNode closes the innermost node.
func (b *Builder) FinishNode() {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	g := NewGreenNode(top.kind, top.children)
	if len(b.stack) == 0 {
		b.root = g
		return
	}
	parent := &b.stack[len(b.stack)-1]
	parent.children = append(parent.children, GreenChild{Node: g})
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int { return len(b.stack) }

// Finish returns the root. All nodes must be closed.
func (b *Builder) Finish() *GreenNode {
	if len(b.stack) != 0 {
		panic("syntax: Builder.Finish with open nodes")
	}
	return b.root
}

// Markup builds the green subtree of a markup span.
func Markup(width uint32) *GreenNode {
	return NewGreenNode(MarkupFragment, []GreenChild{{Token: GreenToken{Kind: token.MarkupText, Width: width}}})
}

// widthOf converts a Go length to a width.
func widthOf(n int) uint32 { return source.MustOffset(n) }
