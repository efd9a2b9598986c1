package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"aspkit/internal/diag"
	"aspkit/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/site")
	content := []byte("<% x = \"unterminated\n%>")
	fileID := fs.AddVirtual("/home/user/site/admin/login.asp", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 7, End: 20}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/site/admin/login.asp"},
		{"Relative path", PathModeRelative, "admin/login.asp:1:8"},
		{"Basename only", PathModeBasename, "login.asp:1:8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("page.asp", []byte("<p>\n<% if a > 1 %>\n</p>"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectThen, source.Span{File: fileID, Start: 7, End: 15}, "expected 'Then'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	want := strings.Join([]string{
		"page.asp:2:4: ERROR SYN2004: expected 'Then'",
		" 1 | <p>",
		" 2 | <% if a > 1 %>",
		"   |    ^~~~~~~~",
		" 3 | </p>",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyTabsAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.asp", []byte("\t<%= \"日本\" & ? %>"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 16, End: 17}, "unknown character"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	// таб = 4 колонки, каждый иероглиф = 2
	caret := strings.Index(lines[2], "^")
	code := strings.Index(lines[1], "    <%=")
	if caret-code != 17 {
		t.Fatalf("caret at %d, code at %d:\n%s", caret, code, buf.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.asp", []byte("<% With o %><% Wend %>"))

	bag := diag.NewBag(4)
	d := diag.NewError(diag.BlkMismatchedCloser, source.Span{File: fileID, Start: 15, End: 19}, "'Wend' does not close 'With'").
		WithNote(source.Span{File: fileID, Start: 3, End: 7}, "'With' opened here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note: n.asp:1:4: 'With' opened here") {
		t.Fatalf("expected note with location, got:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyUnlocated(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load missing.asp: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "aspkit: ERROR IO4001: failed to load missing.asp: no such file\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPathModeFlag(t *testing.T) {
	var m PathMode
	if err := m.Set("Relative"); err != nil || m != PathModeRelative {
		t.Fatalf("Set(Relative) = %v, %v", m, err)
	}
	if err := m.Set("nowhere"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if m.String() != "relative" || m.Type() != "path-mode" {
		t.Fatalf("unexpected String/Type %q %q", m.String(), m.Type())
	}
}

func TestShortIsOneLinePerDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("page.asp", []byte("<p>\n<% if a > 1 %>\n</p>"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectThen, source.Span{File: fileID, Start: 7, End: 15}, "expected 'Then'"))
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, "cache write failed"))

	var buf bytes.Buffer
	Short(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "page.asp:2:4: ERROR SYN2004: expected 'Then'\n" +
		"aspkit: WARNING IO4002: cache write failed\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
