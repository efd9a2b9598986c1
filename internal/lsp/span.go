package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"aspkit/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// lineMap splits content into lines the way LSP clients do: "\n",
// "\r\n" and a bare "\r" all end a line. source.File.LineIdx only knows
// "\n", so positions are converted here.
type lineMap struct {
	content []byte
	starts  []uint32 // начало каждой строки, starts[0] = 0
}

func newLineMap(file *source.File) *lineMap {
	content := file.Content
	starts := make([]uint32, 1, len(file.LineIdx)+1)
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			starts = append(starts, safeUint32(i+1))
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			starts = append(starts, safeUint32(i+1))
		}
	}
	return &lineMap{content: content, starts: starts}
}

// lineBounds returns the line's range without its line break.
func (m *lineMap) lineBounds(line int) (start, end uint32) {
	start = m.starts[line]
	if line+1 >= len(m.starts) {
		return start, safeUint32(len(m.content))
	}
	end = m.starts[line+1] - 1
	if m.content[end] == '\n' && end > start && m.content[end-1] == '\r' {
		end--
	}
	return start, end
}

// offset converts an LSP position (UTF-16 code units) into a byte offset.
// Positions past the line end clamp to it; lines past the end clamp to the
// content length.
func (m *lineMap) offset(pos protocol.Position) uint32 {
	line := int(pos.Line)
	if line >= len(m.starts) {
		return safeUint32(len(m.content))
	}
	lineStart, lineEnd := m.lineBounds(line)
	want := int(pos.Character)
	units := 0
	off := lineStart
	for off < lineEnd && units < want {
		r, size := utf8.DecodeRune(m.content[off:lineEnd])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > want {
			break
		}
		units += need
		off += safeUint32(size)
	}
	return off
}

// position is the inverse of offset. An offset inside a line break maps to
// the end of that line.
func (m *lineMap) position(offset uint32) protocol.Position {
	offset = min(offset, safeUint32(len(m.content)))
	line := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > offset }) - 1
	lineStart, lineEnd := m.lineBounds(line)
	end := min(offset, lineEnd)
	units := 0
	for off := lineStart; off < end; {
		r, size := utf8.DecodeRune(m.content[off:end])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return protocol.Position{Line: safeUint32(line), Character: safeUint32(units)}
}

func (m *lineMap) rangeOf(span source.Span) protocol.Range {
	return protocol.Range{Start: m.position(span.Start), End: m.position(span.End)}
}
