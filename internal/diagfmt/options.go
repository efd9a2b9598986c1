package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "auto"
}

// Set implements pflag.Value.
func (m *PathMode) Set(s string) error {
	for i, name := range pathModeNames {
		if strings.EqualFold(s, name) {
			*m = PathMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown path mode %q (want auto, absolute, relative or basename)", s)
}

// Type implements pflag.Value.
func (m *PathMode) Type() string { return "path-mode" }

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста вокруг основной
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// TreeOpts configures syntax tree dumps.
type TreeOpts struct {
	// Tokens adds token leaves; trivia only with Trivia.
	Tokens bool
	Trivia bool
	// Positions prints line:col ranges instead of byte ranges.
	Positions bool
}
