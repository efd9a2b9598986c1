package syntax

import (
	"sort"
	"sync"

	"aspkit/internal/diag"
	"aspkit/internal/mode"
	"aspkit/internal/source"
	"aspkit/internal/token"
)

type (
	// NodeID addresses a node inside one Tree (1-based, 0 = none).
	NodeID uint32
	// TokenID addresses a token inside one Tree (1-based, 0 = none).
	TokenID uint32
)

const (
	NoNode  NodeID  = 0
	NoToken TokenID = 0
)

func (id NodeID) IsValid() bool  { return id != NoNode }
func (id TokenID) IsValid() bool { return id != NoToken }

// Element is one child of a node: either a node or a token.
type Element struct {
	Node  NodeID
	Token TokenID
}

func (e Element) IsNode() bool { return e.Node.IsValid() }

// SpanTree is the parse result of one mode span. Diagnostics are stored
// relative to the span start so the pair can move with the span when
// text before it changes.
type SpanTree struct {
	Green *GreenNode
	Diags []diag.Diagnostic
}

type nodeData struct {
	kind     NodeKind
	green    *GreenNode
	span     source.Span
	parent   NodeID
	children []Element
}

// Tree is one immutable version of a document's syntax tree.
type Tree struct {
	file  *source.File
	green *GreenNode
	spans []mode.Span
	parts []SpanTree
	diags []diag.Diagnostic

	once        sync.Once
	text        string
	nodes       *Arena[nodeData]
	tokens      []token.Token
	tokenParent []NodeID
	root        NodeID
	spanNodes   []NodeID
}

// Assemble builds a Tree from per-span results. parts[i] belongs to spans[i].
// extra carries file-level diagnostics (scanner, block pairing) in absolute
// coordinates.
func Assemble(file *source.File, spans []mode.Span, parts []SpanTree, extra []diag.Diagnostic) *Tree {
	children := make([]GreenChild, len(parts))
	diags := make([]diag.Diagnostic, 0, len(extra))
	for i, p := range parts {
		children[i] = GreenChild{Node: p.Green}
		for _, d := range p.Diags {
			diags = append(diags, d.Rebase(file.ID, spans[i].Range.Start))
		}
	}
	for _, d := range extra {
		d.Primary = d.Primary.WithFile(file.ID)
		diags = append(diags, d)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Primary.Start != diags[j].Primary.Start {
			return diags[i].Primary.Start < diags[j].Primary.Start
		}
		return diags[i].Primary.End < diags[j].Primary.End
	})
	return &Tree{
		file:  file,
		green: NewGreenNode(File, children),
		spans: spans,
		parts: parts,
		diags: diags,
	}
}

// Relative converts absolute diagnostics into span-relative ones.
func Relative(ds []diag.Diagnostic, base uint32) []diag.Diagnostic {
	if len(ds) == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, len(ds))
	for i, d := range ds {
		d.Primary = d.Primary.ShiftLeft(base).WithFile(0)
		if len(d.Notes) > 0 {
			notes := make([]diag.Note, len(d.Notes))
			for j, n := range d.Notes {
				notes[j] = diag.Note{Span: n.Span.ShiftLeft(base).WithFile(0), Msg: n.Msg}
			}
			d.Notes = notes
		}
		out[i] = d
	}
	return out
}

// WithDiagnostics returns a copy of t sharing all green nodes, with extra
// diagnostics appended. Used by passes that run over a finished tree.
func (t *Tree) WithDiagnostics(extra []diag.Diagnostic) *Tree {
	if len(extra) == 0 {
		return t
	}
	all := make([]diag.Diagnostic, 0, len(t.diags)+len(extra))
	all = append(all, t.diags...)
	all = append(all, extra...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Primary.Start < all[j].Primary.Start })
	return &Tree{file: t.file, green: t.green, spans: t.spans, parts: t.parts, diags: all}
}

// File returns the source file version this tree was built from.
func (t *Tree) File() *source.File { return t.file }

// Green returns the root green node.
func (t *Tree) Green() *GreenNode { return t.green }

// Spans returns the mode spans. Do not modify.
func (t *Tree) Spans() []mode.Span { return t.spans }

// Part returns the parse result of span i.
func (t *Tree) Part(i int) SpanTree { return t.parts[i] }

// Diagnostics returns all diagnostics in absolute coordinates, ordered by position.
func (t *Tree) Diagnostics() []diag.Diagnostic { return t.diags }

// Source returns the full text of the document.
func (t *Tree) Source() string {
	t.index()
	return t.text
}

// Root returns the File node.
func (t *Tree) Root() NodeID {
	t.index()
	return t.root
}

// SpanNode returns the node wrapping span i.
func (t *Tree) SpanNode(i int) NodeID {
	t.index()
	return t.spanNodes[i]
}

func (t *Tree) node(n NodeID) *nodeData {
	t.index()
	nd := t.nodes.Get(uint32(n))
	if nd == nil {
		panic("syntax: invalid NodeID")
	}
	return nd
}

// Kind returns the production of n.
func (t *Tree) Kind(n NodeID) NodeKind { return t.node(n).kind }

// Range returns the absolute byte range of n.
func (t *Tree) Range(n NodeID) source.Span { return t.node(n).span }

// Parent returns the parent of n, NoNode for the root.
func (t *Tree) Parent(n NodeID) NodeID { return t.node(n).parent }

// Children returns the ordered children of n. Do not modify.
func (t *Tree) Children(n NodeID) []Element { return t.node(n).children }

// GreenOf returns the green node behind n.
func (t *Tree) GreenOf(n NodeID) *GreenNode { return t.node(n).green }

// ChildNodes returns the node children of n.
func (t *Tree) ChildNodes(n NodeID) []NodeID {
	out := make([]NodeID, 0, 4)
	for _, c := range t.Children(n) {
		if c.IsNode() {
			out = append(out, c.Node)
		}
	}
	return out
}

// Text returns the source text of n.
func (t *Tree) Text(n NodeID) string {
	sp := t.Range(n)
	return t.text[sp.Start:sp.End]
}

// Token returns the token with the given id.
func (t *Tree) Token(id TokenID) token.Token {
	t.index()
	return t.tokens[id-1]
}

// TokenParent returns the node that directly owns the token.
func (t *Tree) TokenParent(id TokenID) NodeID {
	t.index()
	return t.tokenParent[id-1]
}

// Tokens returns every token of the document in source order. Do not modify.
func (t *Tree) Tokens() []token.Token {
	t.index()
	return t.tokens
}

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int {
	t.index()
	return t.nodes.Len()
}

func (t *Tree) index() {
	t.once.Do(t.build)
}

func (t *Tree) build() {
	t.text = string(t.file.Content)
	t.nodes = NewArena[nodeData](t.green.CountNodes())
	t.tokens = make([]token.Token, 0, len(t.text)/3+1)
	t.root = t.materialize(t.green, 0, NoNode)
	t.spanNodes = make([]NodeID, 0, len(t.parts))
	for _, c := range t.nodes.Get(uint32(t.root)).children {
		t.spanNodes = append(t.spanNodes, c.Node)
	}
}

func (t *Tree) materialize(g *GreenNode, off uint32, parent NodeID) NodeID {
	id := NodeID(t.nodes.Allocate(nodeData{
		kind:   g.kind,
		green:  g,
		span:   source.Span{File: t.file.ID, Start: off, End: off + g.width},
		parent: parent,
	}))
	children := make([]Element, 0, len(g.children))
	for _, c := range g.children {
		if c.Node != nil {
			children = append(children, Element{Node: t.materialize(c.Node, off, id)})
			off += c.Node.width
			continue
		}
		end := off + c.Token.Width
		ch := token.ChannelScript
		if c.Token.Kind == token.MarkupText {
			ch = token.ChannelMarkup
		}
		t.tokens = append(t.tokens, token.Token{
			Kind:    c.Token.Kind,
			Span:    source.Span{File: t.file.ID, Start: off, End: end},
			Text:    t.text[off:end],
			Channel: ch,
		})
		t.tokenParent = append(t.tokenParent, id)
		children = append(children, Element{Token: TokenID(widthOf(len(t.tokens)))})
		off = end
	}
	t.nodes.Get(uint32(id)).children = children
	return id
}
