package mode

import (
	"bytes"

	"aspkit/internal/diag"
	"aspkit/internal/source"
)

var (
	openDelim  = []byte("<%")
	closeDelim = []byte("%>")
)

// Options control a scan.
type Options struct {
	// Reporter receives SCN diagnostics; nil discards them.
	Reporter diag.Reporter
}

// Scan partitions file into spans. Files flagged source.FileScript yield a
// single Script span.
func Scan(file *source.File, opts Options) []Span {
	if file.Flags&source.FileScript != 0 {
		return []Span{{Kind: Script, Range: file.Span()}}
	}
	spans := ScanBytes(file.ID, file.Content, 0)
	if opts.Reporter != nil {
		ReportUnterminated(spans, opts.Reporter)
	}
	return spans
}

// ScanBytes partitions content whose first byte sits at offset base.
func ScanBytes(id source.FileID, content []byte, base uint32) []Span {
	spans := make([]Span, 0, 8)
	n := source.MustOffset(len(content))
	var off uint32

	for off < n {
		rel := bytes.Index(content[off:], openDelim)
		if rel < 0 {
			spans = append(spans, Span{Kind: Markup, Range: mk(id, base, off, n)})
			break
		}
		open := off + source.MustOffset(rel)
		if open > off {
			spans = append(spans, Span{Kind: Markup, Range: mk(id, base, off, open)})
		}

		next, hasNext := byte(0), open+2 < n
		if hasNext {
			next = content[open+2]
		}
		kind := KindForOpener(next, hasNext)
		sp := Span{Kind: kind}
		bodyStart := open + sp.OpenLen()

		// "%>" ищем только после открывающего разделителя целиком,
		// иначе "<%>" закрылся бы сам собой
		closeRel := bytes.Index(content[bodyStart:], closeDelim)
		if closeRel < 0 {
			sp.Range = mk(id, base, open, n)
			sp.Unterminated = true
			spans = append(spans, sp)
			break
		}
		end := bodyStart + source.MustOffset(closeRel) + 2
		sp.Range = mk(id, base, open, end)
		spans = append(spans, sp)
		off = end
	}
	return spans
}

func mk(id source.FileID, base, start, end uint32) source.Span {
	return source.Span{File: id, Start: base + start, End: base + end}
}

// ReportUnterminated emits one diagnostic per unterminated block, anchored at
// end of file and pointing back at the opener.
func ReportUnterminated(spans []Span, r diag.Reporter) {
	for _, sp := range spans {
		if !sp.Unterminated {
			continue
		}
		eof := sp.Range.ToEnd()
		opener := source.Span{File: sp.Range.File, Start: sp.Range.Start, End: sp.Range.Start + sp.OpenLen()}
		diag.ReportError(r, diag.ScnUnterminatedBlock, eof, "script block is not closed with '%>' before end of file").
			WithNote(opener, "block opened here").
			Emit()
	}
}
