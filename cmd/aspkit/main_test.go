package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aspkit/internal/driver"
)

var siteDir = filepath.Join("..", "..", "testdata", "site")

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--color", "off", "--config", writeConfig(t)}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aspkit.toml")
	if err := os.WriteFile(path, []byte("[cache]\nenabled = false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnumFlag(t *testing.T) {
	f := newEnumFlag("pretty", "pretty", "json")
	if err := f.Set("JSON"); err != nil || f.String() != "json" {
		t.Fatalf("Set(JSON) = %v, value %q", err, f.String())
	}
	if err := f.Set("yaml"); err == nil {
		t.Fatal("expected error for unknown value")
	}
	if f.String() != "json" {
		t.Fatalf("failed Set changed the value to %q", f.String())
	}
}

func TestTokenizeJSON(t *testing.T) {
	out, _, err := execute(t, "tokenize", "--format", "json", filepath.Join(siteDir, "util.vbs"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(toks) == 0 || toks[0]["text"] != "Const" {
		t.Fatalf("unexpected first token %+v", toks[0])
	}
}

func TestParseOutline(t *testing.T) {
	out, _, err := execute(t, "parse", "--outline", filepath.Join(siteDir, "index.asp"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, want := range []string{"For 9-11 (across blocks)", "If 13-17 (across blocks)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("outline lacks %q:\n%s", want, out)
		}
	}
}

func TestDiagReportsErrors(t *testing.T) {
	out, stderr, err := execute(t, "diag", "--format", "short", "--path-mode", "basename", filepath.Join(siteDir, "broken.asp"))
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	for _, want := range []string{"broken.asp:1:", "BLK2501", "LEX"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr, "1 file(s) checked") {
		t.Fatalf("missing summary in stderr:\n%s", stderr)
	}
}

func TestDiagCleanSite(t *testing.T) {
	out, _, err := execute(t, "diag", "--format", "json", filepath.Join(siteDir, "index.asp"))
	if err != nil {
		t.Fatalf("diag: %v\n%s", err, out)
	}
	var payload struct {
		Diagnostics []json.RawMessage `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(payload.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %s", out)
	}
}

func TestStatsJSON(t *testing.T) {
	out, _, err := execute(t, "stats", "--format", "json", siteDir)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var all []statsJSON
	if err := json.Unmarshal([]byte(out), &all); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	var index *statsJSON
	for i := range all {
		if filepath.Base(all[i].Path) == "index.asp" {
			index = &all[i]
		}
	}
	if index == nil {
		t.Fatalf("index.asp missing from %s", out)
	}
	if len(index.Includes) != 2 || index.Tags["li"] != 1 {
		t.Fatalf("unexpected stats %+v", index)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Tool != "aspkit" || payload.Version == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestWatchedPaths(t *testing.T) {
	root := filepath.FromSlash("/srv/site")
	cases := []struct {
		path string
		exts []string
		want bool
	}{
		{"/srv/site/index.asp", nil, true},
		{"/srv/site/inc/header.INC", nil, true},
		{"/srv/site/readme.txt", nil, false},
		{"/srv/site/.aspkit-cache/ab/cd.mpk", nil, false},
		{"/srv/site/.git/index.asp", nil, false},
		// [files] extensions from aspkit.toml replace the defaults
		{"/srv/site/index.asp", []string{".asp"}, true},
		{"/srv/site/inc/header.inc", []string{".asp"}, false},
		{"/srv/site/legacy/page.htm", []string{".asp", ".htm"}, true},
	}
	for _, tc := range cases {
		opts := driver.Options{Extensions: tc.exts}
		if got := watched(root, filepath.FromSlash(tc.path), opts); got != tc.want {
			t.Errorf("watched(%q, %v) = %v, want %v", tc.path, tc.exts, got, tc.want)
		}
	}
}
