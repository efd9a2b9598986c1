package incremental

import (
	"fmt"

	"aspkit/internal/source"
)

// Edit replaces bytes [Start, End) of the previous text with Text.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d,%d)->%q", e.Start, e.End, e.Text)
}

// delta is the change in document length.
func (e Edit) delta() int64 {
	return int64(len(e.Text)) - int64(e.End-e.Start)
}

func (e Edit) validate(size uint32) error {
	if e.Start > e.End {
		return fmt.Errorf("edit %s: start after end", e)
	}
	if e.End > size {
		return fmt.Errorf("edit %s: end beyond document length %d", e, size)
	}
	return nil
}

// Apply returns content with the edit applied. content is not modified.
func (e Edit) Apply(content []byte) []byte {
	out := make([]byte, 0, len(content)+len(e.Text))
	out = append(out, content[:e.Start]...)
	out = append(out, e.Text...)
	return append(out, content[e.End:]...)
}

// shift moves sp by d bytes.
func shift(sp source.Span, d int64) source.Span {
	sp.Start = source.MustOffset(int(int64(sp.Start) + d))
	sp.End = source.MustOffset(int(int64(sp.End) + d))
	return sp
}
