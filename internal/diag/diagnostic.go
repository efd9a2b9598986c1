package diag

import (
	"aspkit/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Rebase moves the diagnostic and its notes by delta bytes and onto file.
// Used when a span-local diagnostic is placed back into a whole-file tree.
func (d Diagnostic) Rebase(file source.FileID, delta uint32) Diagnostic {
	d.Primary = d.Primary.ShiftRight(delta).WithFile(file)
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			notes[i] = Note{Span: n.Span.ShiftRight(delta).WithFile(file), Msg: n.Msg}
		}
		d.Notes = notes
	}
	return d
}
