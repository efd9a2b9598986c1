package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"aspkit/internal/diag"
	"aspkit/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, caret, gutter, code *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		caret:  mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
		code:   mk(color.Faint),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
// Диагностики без позиции (IO, CFG) печатаются одной строкой.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

// Short prints one line per diagnostic, without source context or notes.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		headline(w, d, fs, opts, p)
	}
}

// headline prints "<path>:<line>:<col>: <SEV> <CODE>: <msg>" and returns
// the file of the primary span, nil for unlocated diagnostics.
func headline(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) *source.File {
	head := fmt.Sprintf("%s %s: %s", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
	f := lookup(fs, d.Primary.File)
	if !d.Code.Located() || f == nil {
		fmt.Fprintf(w, "aspkit: %s\n", head)
		return nil
	}
	pos := f.LineCol(d.Primary.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s\n", formatPath(f, fs, opts.PathMode), pos.Line, pos.Col, head)
	return f
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := headline(w, d, fs, opts, p)
	if f == nil {
		return
	}
	snippet(w, f, d.Primary, opts, p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := lookup(fs, n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		np := nf.LineCol(n.Span.Start)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), np.Line, np.Col, n.Msg)
		snippet(w, nf, n.Span, PrettyOpts{Width: opts.Width}, p)
	}
}

// snippet prints the source lines of sp with context and an underline
// on the first line of the span.
func snippet(w io.Writer, f *source.File, sp source.Span, opts PrettyOpts, p palette) {
	start := f.LineCol(sp.Start)
	end := f.LineCol(sp.End)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	if total := uint32(len(f.LineIdx)) + 1; last > total {
		last = total
	}
	gw := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := expandTabs(f.GetLine(line))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprintf("%*d", gw, line), p.gutter.Sprint("|"), text)
		if line != start.Line {
			continue
		}
		raw := f.GetLine(line)
		from := int(start.Col - 1)
		to := len(raw)
		if end.Line == start.Line {
			to = int(end.Col - 1)
		}
		from, to = min(from, len(raw)), min(max(to, from), len(raw))
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		n := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
		mark := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gw), p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(mark))
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// lookup returns nil for ids the set does not know.
func lookup(fs *source.FileSet, id source.FileID) *source.File {
	if fs == nil || int(id) >= fs.Len() {
		return nil
	}
	return fs.Get(id)
}
