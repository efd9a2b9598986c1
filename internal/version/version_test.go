package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestBannerPlain(t *testing.T) {
	orig := [...]string{Version, GitCommit, GitMessage, BuildDate}
	defer func() { Version, GitCommit, GitMessage, BuildDate = orig[0], orig[1], orig[2], orig[3] }()

	Version, GitCommit, GitMessage, BuildDate = "1.2.3", "abc123", "", "2024-01-15T10:30:00Z"
	got := Banner(false)
	want := "aspkit 1.2.3\ncommit: abc123\nbuilt: 2024-01-15T10:30:00Z\n"
	if got != want {
		t.Errorf("Banner(false) = %q, want %q", got, want)
	}
}

func TestColoredKeepsDigits(t *testing.T) {
	orig, noColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, noColor }()
	color.NoColor = false

	Version = "2.0.1-rc1"
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored() = %q", got)
	}

	Version = "nightly"
	if Colored() != "nightly" {
		t.Errorf("non-semver version should pass through, got %q", Colored())
	}
}
