package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

// TreeNodeJSON is one element of a JSON tree dump. Tokens have Text and no
// Children.
type TreeNodeJSON struct {
	Kind     string          `json:"kind"`
	Start    uint32          `json:"start"`
	End      uint32          `json:"end"`
	Text     *string         `json:"text,omitempty"`
	Children []*TreeNodeJSON `json:"children,omitempty"`
}

// FormatTreePretty печатает дерево в виде
//
//	File (span: 1:1-1:12)
//	└─ ScriptBlock (span: 1:1-1:12)
//	   ├─ VariableAssignment (span: 1:4-1:9)
func FormatTreePretty(w io.Writer, t *syntax.Tree, opts TreeOpts) error {
	root := t.Root()
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", t.Kind(root), formatRange(t.File(), t.Range(root), opts)); err != nil {
		return err
	}
	return prettyChildren(w, t, root, "", opts)
}

func prettyChildren(w io.Writer, t *syntax.Tree, n syntax.NodeID, prefix string, opts TreeOpts) error {
	children := visible(t, n, opts)
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if c.IsNode() {
			if _, err := fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, t.Kind(c.Node), formatRange(t.File(), t.Range(c.Node), opts)); err != nil {
				return err
			}
			if err := prettyChildren(w, t, c.Node, prefix+next, opts); err != nil {
				return err
			}
			continue
		}
		tok := t.Token(c.Token)
		text := runewidth.Truncate(tok.Text, 40, "...")
		if _, err := fmt.Fprintf(w, "%s%s%s %q (span: %s)\n", prefix, branch, tok.Kind, text, formatRange(t.File(), tok.Span, opts)); err != nil {
			return err
		}
	}
	return nil
}

// FormatTreeJSON пишет дерево вложенными объектами.
func FormatTreeJSON(w io.Writer, t *syntax.Tree, opts TreeOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonNode(t, t.Root(), opts))
}

func jsonNode(t *syntax.Tree, n syntax.NodeID, opts TreeOpts) *TreeNodeJSON {
	sp := t.Range(n)
	out := &TreeNodeJSON{Kind: t.Kind(n).String(), Start: sp.Start, End: sp.End}
	for _, c := range visible(t, n, opts) {
		if c.IsNode() {
			out.Children = append(out.Children, jsonNode(t, c.Node, opts))
			continue
		}
		tok := t.Token(c.Token)
		text := tok.Text
		out.Children = append(out.Children, &TreeNodeJSON{
			Kind: tok.Kind.String(), Start: tok.Span.Start, End: tok.Span.End, Text: &text,
		})
	}
	return out
}

// visible filters the children of n by opts.
func visible(t *syntax.Tree, n syntax.NodeID, opts TreeOpts) []syntax.Element {
	all := t.Children(n)
	out := make([]syntax.Element, 0, len(all))
	for _, c := range all {
		if !c.IsNode() {
			if !opts.Tokens {
				continue
			}
			if !opts.Trivia && t.Token(c.Token).IsTrivia() {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func formatRange(f *source.File, sp source.Span, opts TreeOpts) string {
	if !opts.Positions {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := f.LineCol(sp.Start), f.LineCol(sp.End)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// Outline renders the block pairs of a file, one per line, indented by
// nesting depth.
func Outline(w io.Writer, f *source.File, ranges []OutlineEntry) {
	var stack []uint32
	for _, e := range ranges {
		for len(stack) > 0 && e.Range.Start >= stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
		}
		pos := f.LineCol(e.Range.Start)
		endPos := f.LineCol(e.Range.End)
		fmt.Fprintf(w, "%s%s %d-%d", strings.Repeat("  ", len(stack)), e.Label, pos.Line, endPos.Line)
		if e.CrossSpan {
			fmt.Fprint(w, " (across blocks)")
		}
		fmt.Fprintln(w)
		stack = append(stack, e.Range.End)
	}
}

// OutlineEntry is one matched block for Outline.
type OutlineEntry struct {
	Label     string
	Range     source.Span
	CrossSpan bool
}
