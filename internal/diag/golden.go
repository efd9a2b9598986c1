package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"aspkit/internal/source"
)

// goldenLine is one rendered entry; notes get severity "note".
type goldenLine struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

// FormatGoldenDiagnostics renders diagnostics one per line in a stable
// order (path, line, column, severity, code, message) for test fixtures.
// Spans whose file is not in fs are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	lines := make([]goldenLine, 0, len(diags))
	add := func(sev string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		path := filepath.ToSlash(fs.Get(sp.File).FormatPath("relative", fs.BaseDir()))
		for strings.HasPrefix(path, "./") {
			path = path[2:]
		}
		lines = append(lines, goldenLine{sev: sev, code: code.ID(), path: path, pos: start, msg: oneLine(msg)})
	}
	for _, d := range diags {
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}

	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
	}
	return strings.Join(out, "\n")
}

// oneLine folds line breaks of a message into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
