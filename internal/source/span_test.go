package source

import "testing"

func TestSpanShift(t *testing.T) {
	tests := []struct {
		name string
		got  Span
		want Span
	}{
		{"left", Span{File: 1, Start: 10, End: 20}.ShiftLeft(5), Span{File: 1, Start: 5, End: 15}},
		{"left to zero", Span{File: 1, Start: 10, End: 20}.ShiftLeft(10), Span{File: 1, Start: 0, End: 10}},
		{"left past zero", Span{File: 1, Start: 10, End: 20}.ShiftLeft(15), Span{File: 1, Start: 10, End: 20}},
		{"right", Span{File: 1, Start: 10, End: 20}.ShiftRight(3), Span{File: 1, Start: 13, End: 23}},
		{"to start", Span{File: 2, Start: 4, End: 9}.ToStart(), Span{File: 2, Start: 4, End: 4}},
		{"to end", Span{File: 2, Start: 4, End: 9}.ToEnd(), Span{File: 2, Start: 9, End: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 8, End: 14}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 14}) {
		t.Errorf("Cover = %+v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover across files must keep receiver, got %+v", got)
	}
	if !a.Contains(5) || a.Contains(10) {
		t.Errorf("Contains must be half-open")
	}
	if !a.Cover(b).Covers(b) || a.Covers(b) {
		t.Errorf("Covers mismatch")
	}
}
