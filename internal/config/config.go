// Package config reads aspkit.toml, the per-site settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"aspkit/internal/driver"
	"aspkit/internal/lexer"
	"aspkit/internal/parser"
	"aspkit/internal/source"
)

// FileName is looked up from the working directory upwards.
const FileName = "aspkit.toml"

type Config struct {
	Lexer       LexerConfig       `toml:"lexer"`
	Parser      ParserConfig      `toml:"parser"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Files       FilesConfig       `toml:"files"`
	Cache       CacheConfig       `toml:"cache"`

	// Path of the file the config came from; empty for defaults.
	Path string `toml:"-"`
}

type LexerConfig struct {
	MaxTokenLength int `toml:"max_token_length"`
}

type ParserConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type DiagnosticsConfig struct {
	Max              int  `toml:"max"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

type FilesConfig struct {
	Extensions []string `toml:"extensions"`
	Codepage   string   `toml:"codepage"`
}

type CacheConfig struct {
	Dir     string `toml:"dir"`
	Enabled bool   `toml:"enabled"`
}

// Default returns the settings used without aspkit.toml.
func Default() Config {
	return Config{
		Lexer:       LexerConfig{MaxTokenLength: lexer.DefaultMaxTokenLength},
		Parser:      ParserConfig{MaxDepth: parser.DefaultMaxDepth},
		Diagnostics: DiagnosticsConfig{Max: 100},
		Files:       FilesConfig{Extensions: append([]string(nil), driver.DefaultExtensions...)},
		Cache:       CacheConfig{Dir: ".aspkit-cache"},
	}
}

// Find returns the nearest aspkit.toml at or above startDir.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	// каталог кэша считается от файла конфигурации
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

// Discover finds and loads the nearest aspkit.toml, falling back to
// Default when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if c.Lexer.MaxTokenLength < 0 {
		return fmt.Errorf("[lexer].max_token_length must not be negative")
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("[parser].max_depth must not be negative")
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative")
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[files].extensions: %q must look like \".asp\"", ext)
		}
	}
	if c.Files.Codepage != "" {
		if _, err := source.Decode(nil, c.Files.Codepage); err != nil {
			return fmt.Errorf("[files].codepage: %w", err)
		}
	}
	return nil
}

// DriverOptions maps the config onto batch options. Cache is left to the
// caller, which decides whether to open it.
func (c Config) DriverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics:   c.Diagnostics.Max,
		MaxTokenLength:   c.Lexer.MaxTokenLength,
		MaxDepth:         c.Parser.MaxDepth,
		Codepage:         c.Files.Codepage,
		Extensions:       c.Files.Extensions,
		WarningsAsErrors: c.Diagnostics.WarningsAsErrors,
	}
}
