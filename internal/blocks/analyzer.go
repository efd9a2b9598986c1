package blocks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"aspkit/internal/diag"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

// Pair is a matched opener/closer.
type Pair struct {
	Kind syntax.NodeKind
	// Opener is the opening keyword, Closer the whole closer ("End If").
	Opener source.Span
	Closer source.Span
	// Range runs from the construct start to the closer end.
	Range source.Span
	// CrossSpan is set when opener and closer sit in different script blocks.
	CrossSpan bool
}

// Result of one pass over a tree.
type Result struct {
	Pairs       []Pair
	Diagnostics []diag.Diagnostic
	// Reused counts spans whose marks came from the cache.
	Reused int
}

// Analyzer caches per-span marks keyed by green node identity.
type Analyzer struct {
	mu    sync.Mutex
	cache map[*syntax.GreenNode][]mark
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{cache: make(map[*syntax.GreenNode][]mark)}
}

// Analyze runs the pass with a throwaway cache.
func Analyze(t *syntax.Tree) Result {
	return NewAnalyzer().Analyze(t)
}

type frame struct {
	m    mark
	span int
	base uint32
}

// Analyze pairs the constructs of t. The cache is trimmed to the spans of t.
func (a *Analyzer) Analyze(t *syntax.Tree) Result {
	file := t.File()
	spans := t.Spans()
	res := Result{}

	a.mu.Lock()
	next := make(map[*syntax.GreenNode][]mark, len(spans))
	perSpan := make([][]mark, len(spans))
	for i := range spans {
		g := t.Part(i).Green
		if g.Kind() == syntax.MarkupFragment {
			continue
		}
		ms, ok := a.cache[g]
		if ok {
			res.Reused++
		} else {
			ms = collect(g)
		}
		next[g] = ms
		perSpan[i] = ms
	}
	a.cache = next
	a.mu.Unlock()

	abs := func(base uint32, r relSpan) source.Span {
		return source.Span{File: file.ID, Start: base + r.start, End: base + r.end}
	}
	report := func(d diag.Diagnostic) { res.Diagnostics = append(res.Diagnostics, d) }

	var stack []frame
	for i, ms := range perSpan {
		base := spans[i].Range.Start
		for _, m := range ms {
			switch m.kind {
			case markOpen:
				stack = append(stack, frame{m: m, span: i, base: base})

			case markDrop:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}

			case markClause:
				if len(stack) > 0 && (stack[len(stack)-1].m.fam == m.fam || stack[len(stack)-1].m.quiet) {
					continue
				}
				word := "Else"
				if m.fam == famSelect {
					word = "Case"
				}
				report(diag.NewError(diag.BlkClauseOutsideBlock, abs(base, m.keyword),
					fmt.Sprintf("'%s' outside of '%s' block", word, familyOpener[m.fam])))

			case markClose:
				closer := abs(base, m.whole)
				idx := -1
				for j := len(stack) - 1; j >= 0; j-- {
					if stack[j].m.fam == m.fam {
						idx = j
						break
					}
				}
				if idx < 0 {
					if len(stack) == 0 {
						report(diag.NewError(diag.BlkCloserWithoutOpener, closer,
							fmt.Sprintf("'%s' without matching '%s'", m.label, familyOpener[m.fam])))
						continue
					}
					top := stack[len(stack)-1]
					if top.m.quiet {
						continue
					}
					report(diag.NewError(diag.BlkMismatchedCloser, closer,
						fmt.Sprintf("'%s' does not close '%s'", m.label, label(top.m))).
						WithNote(abs(top.base, top.m.keyword), fmt.Sprintf("'%s' opened here", label(top.m))))
					continue
				}
				for j := len(stack) - 1; j > idx; j-- {
					f := stack[j]
					if f.m.quiet {
						continue
					}
					report(diag.NewError(diag.BlkUnclosed, abs(f.base, f.m.keyword),
						fmt.Sprintf("'%s' is not closed before '%s'", label(f.m), m.label)).
						WithNote(closer, "enclosing block ends here"))
				}
				open := stack[idx]
				res.Pairs = append(res.Pairs, Pair{
					Kind:      open.m.node,
					Opener:    abs(open.base, open.m.keyword),
					Closer:    closer,
					Range:     source.Span{File: file.ID, Start: open.base + open.m.whole.start, End: closer.End},
					CrossSpan: open.span != i,
				})
				stack = stack[:idx]
			}
		}
	}

	sev := diag.SevError
	if isInclude(file.Path) {
		// include-файлы часто открывают блок, который закрывает другой файл
		sev = diag.SevWarning
	}
	for _, f := range stack {
		if f.m.quiet {
			continue
		}
		report(diag.New(sev, diag.BlkUnclosed, abs(f.base, f.m.keyword),
			fmt.Sprintf("'%s' block is never closed; expected '%s'", label(f.m), familyCloser[f.m.fam])))
	}

	sort.SliceStable(res.Pairs, func(i, j int) bool { return res.Pairs[i].Range.Start < res.Pairs[j].Range.Start })
	sort.SliceStable(res.Diagnostics, func(i, j int) bool {
		return res.Diagnostics[i].Primary.Start < res.Diagnostics[j].Primary.Start
	})
	return res
}

// Len returns the number of cached spans.
func (a *Analyzer) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.cache)
}

func label(m mark) string {
	if m.node == syntax.ForEachStatement {
		return "For Each"
	}
	return familyOpener[m.fam]
}

func isInclude(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".inc")
}
