package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"aspkit/internal/diag"
	"aspkit/internal/source"
	"aspkit/internal/version"
)

// Bump when the payload layout or the meaning of cached diagnostics changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores the diagnostics of checked files keyed by content hash
// and the options that influence them. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack record of one file.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []cachedDiagnostic
}

type cachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
	Notes    []cachedNote
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache opens (creating if needed) a cache in dir. An empty dir
// selects $XDG_CACHE_HOME/aspkit.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "aspkit")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

// cacheKey = H(schema, version, options, content hash).
func cacheKey(file *source.File, opts Options) [32]byte {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	_, _ = h.Write([]byte(version.Version))
	binary.LittleEndian.PutUint32(buf[:4], uint32(max(opts.MaxTokenLength, 0)))
	binary.LittleEndian.PutUint32(buf[4:], uint32(max(opts.MaxDiagnostics, 0)))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:4], uint32(max(opts.MaxDepth, 0)))
	_, _ = h.Write(buf[:4])
	if opts.WarningsAsErrors {
		_, _ = h.Write([]byte{1})
	}
	// путь влияет на диагностику: .vbs и .inc разбираются иначе
	_, _ = h.Write([]byte(filepath.Ext(file.Path)))
	_, _ = h.Write(file.Hash[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key [32]byte) string {
	k := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "diag", k[:2], k+".mp")
}

// Put writes a payload atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry is (false, nil).
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diag"))
}

// lookup returns the cached diagnostics of file rebased onto its FileID.
// Corrupt entries count as misses.
func (c *DiskCache) lookup(file *source.File, opts Options) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	var p DiskPayload
	ok, err := c.Get(cacheKey(file, opts), &p)
	if err != nil || !ok || p.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	out := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file.ID, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file.ID, Start: n.Start, End: n.End}, n.Msg)
		}
		out[i] = d
	}
	return out, true
}

func (c *DiskCache) store(file *source.File, opts Options, ds []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	p := &DiskPayload{Schema: diskCacheSchemaVersion, Path: file.Path, Diagnostics: make([]cachedDiagnostic, len(ds))}
	for i, d := range ds {
		cd := cachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics[i] = cd
	}
	return c.Put(cacheKey(file, opts), p)
}
