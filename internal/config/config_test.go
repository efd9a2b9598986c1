package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, FileName)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, `
[lexer]
max_token_length = 500

[parser]
max_depth = 64

[diagnostics]
max = 7
warnings_as_errors = true

[files]
extensions = [".asp", ".inc"]
codepage = "windows-1251"

[cache]
dir = "cache"
enabled = true
`)
	deep := filepath.Join(root, "admin", "reports")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(deep)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Lexer.MaxTokenLength != 500 || cfg.Diagnostics.Max != 7 || !cfg.Diagnostics.WarningsAsErrors {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.Cache.Dir != filepath.Join(root, "cache") || !cfg.Cache.Enabled {
		t.Errorf("cache = %+v", cfg.Cache)
	}

	opts := cfg.DriverOptions()
	if opts.Codepage != "windows-1251" || len(opts.Extensions) != 2 || opts.MaxDiagnostics != 7 || opts.MaxDepth != 64 {
		t.Errorf("driver options %+v", opts)
	}
}

func TestDefaultsWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// выше TempDir файла быть не должно, но проверяем только поля по умолчанию
	if cfg.Path != "" {
		t.Skipf("found a stray %s at %s", FileName, cfg.Path)
	}
	if cfg.Lexer.MaxTokenLength != 10000 || cfg.Diagnostics.Max != 100 || cfg.Cache.Enabled {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	p := write(t, t.TempDir(), "[diagnostics]\nmax = 3\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Diagnostics.Max != 3 || cfg.Lexer.MaxTokenLength != 10000 || cfg.Parser.MaxDepth != 500 || len(cfg.Files.Extensions) != 4 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[lexer\n", "failed to parse TOML"},
		{"unknown key", "[lexer]\nmax_len = 3\n", "unknown keys: lexer.max_len"},
		{"negative", "[diagnostics]\nmax = -1\n", "[diagnostics].max"},
		{"negative depth", "[parser]\nmax_depth = -5\n", "[parser].max_depth"},
		{"extension", "[files]\nextensions = [\"asp\"]\n", "[files].extensions"},
		{"codepage", "[files]\ncodepage = \"klingon\"\n", "[files].codepage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := write(t, t.TempDir(), tc.body)
			_, err := Load(p)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load() error = %v, want %q", err, tc.want)
			}
		})
	}
}
