package incremental

import (
	"bytes"
	"sort"
	"strconv"

	"aspkit/internal/diag"
	"aspkit/internal/mode"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
	"aspkit/internal/trace"
)

// Path tells which strategy handled an edit.
type Path uint8

const (
	// PathFull rescanned and reparsed the whole document.
	PathFull Path = iota
	// PathScript reparsed one script block.
	PathScript
	// PathMarkup rebuilt one markup fragment.
	PathMarkup
)

func (p Path) String() string {
	switch p {
	case PathScript:
		return "script"
	case PathMarkup:
		return "markup"
	default:
		return "full"
	}
}

// Stats describes the work done for one edit.
type Stats struct {
	Path     Path
	Spans    int
	Reparsed int
	Reused   int
}

// Reparser applies edits to trees.
type Reparser struct {
	opts parser.Options
}

func New(opts parser.Options) *Reparser {
	return &Reparser{opts: opts}
}

// ApplyEdit applies e to prev with default options.
func ApplyEdit(prev *syntax.Tree, e Edit) (*syntax.Tree, Stats, error) {
	return New(parser.Options{}).Apply(prev, e)
}

// Apply returns the tree of the edited text. The result has the same shape,
// kinds and ranges as a fresh parse of that text; spans the edit did not
// touch keep their green nodes.
func (r *Reparser) Apply(prev *syntax.Tree, e Edit) (*syntax.Tree, Stats, error) {
	old := prev.File()
	if err := e.validate(old.Len()); err != nil {
		return nil, Stats{}, err
	}
	sp := trace.Begin(r.opts.Tracer, trace.ScopePass, "reparse", 0)
	file := old.Revise(e.Apply(old.Content))

	tree, st, ok := r.fast(prev, file, e)
	if !ok {
		tree = parser.ParseFile(file, r.opts)
		st = Stats{Path: PathFull, Spans: len(tree.Spans()), Reparsed: len(tree.Spans())}
	}
	sp.WithExtra("path", st.Path.String()).WithExtra("reused", strconv.Itoa(st.Reused)).End(e.String())
	return tree, st, nil
}

func (r *Reparser) fast(prev *syntax.Tree, file *source.File, e Edit) (*syntax.Tree, Stats, bool) {
	if file.Flags&source.FileScript != 0 {
		return nil, Stats{}, false
	}
	spans := prev.Spans()
	for _, i := range candidates(spans, e.Start) {
		s := spans[i]
		var ok bool
		if s.Kind == mode.Markup {
			ok = markupEditIsLocal(prev.File().Content, s, e)
		} else {
			ok = scriptEditIsLocal(prev.File().Content, s, e)
		}
		if !ok {
			continue
		}
		path := PathScript
		if s.Kind == mode.Markup {
			path = PathMarkup
		}
		return r.patch(prev, file, i, e), Stats{
			Path: path, Spans: len(spans), Reparsed: 1, Reused: len(spans) - 1,
		}, true
	}
	return nil, Stats{}, false
}

// patch replaces span i and shifts the spans after it.
func (r *Reparser) patch(prev *syntax.Tree, file *source.File, i int, e Edit) *syntax.Tree {
	d := e.delta()
	old := prev.Spans()
	spans := make([]mode.Span, len(old))
	parts := make([]syntax.SpanTree, len(old))
	for j, s := range old {
		switch {
		case j < i:
			parts[j] = prev.Part(j)
		case j == i:
			s.Range.End = source.MustOffset(int(int64(s.Range.End) + d))
		default:
			s.Range = shift(s.Range, d)
			parts[j] = prev.Part(j)
		}
		spans[j] = s
	}
	parts[i] = parser.ParseSpan(file, spans[i], r.opts)

	bag := diag.NewBag(0)
	mode.ReportUnterminated(spans, diag.BagReporter{Bag: bag})
	return syntax.Assemble(file, spans, parts, bag.Items())
}

// candidates returns the span containing off and, when off sits on a
// boundary, the span ending there.
func candidates(spans []mode.Span, off uint32) []int {
	if len(spans) == 0 {
		return nil
	}
	i := sort.Search(len(spans), func(k int) bool { return spans[k].Range.End > off })
	if i == len(spans) {
		return []int{len(spans) - 1}
	}
	if spans[i].Range.Start == off && i > 0 {
		return []int{i, i - 1}
	}
	return []int{i}
}

var (
	openDelim  = []byte("<%")
	closeDelim = []byte("%>")
)

// scriptEditIsLocal reports whether the edit stays inside the interior of
// s and leaves the span boundaries and kind unchanged.
func scriptEditIsLocal(content []byte, s mode.Span, e Edit) bool {
	in := s.Interior()
	if e.Start < in.Start || e.End > in.End {
		return false
	}
	body := Edit{Start: e.Start - in.Start, End: e.End - in.Start, Text: e.Text}.Apply(content[in.Start:in.End])
	if bytes.Contains(body, closeDelim) {
		return false
	}
	if s.Kind == mode.StatementBlock && len(body) > 0 && (body[0] == '=' || body[0] == '@') {
		return false
	}
	return true
}

// markupEditIsLocal reports whether the edit stays inside markup span s and
// cannot create a script opener.
func markupEditIsLocal(content []byte, s mode.Span, e Edit) bool {
	if e.Start < s.Range.Start || e.End > s.Range.End {
		return false
	}
	text := Edit{Start: e.Start - s.Range.Start, End: e.End - s.Range.Start, Text: e.Text}.
		Apply(content[s.Range.Start:s.Range.End])
	// пустой фрагмент исчезает из разбиения
	return len(text) > 0 && !bytes.Contains(text, openDelim)
}
