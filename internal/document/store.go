package document

import (
	"fmt"
	"sort"
	"sync"

	"aspkit/internal/parser"
	"aspkit/internal/source"
)

// Store maps URIs to open documents. Documents are independent; the store
// lock only guards the map and the file set.
type Store struct {
	mu   sync.Mutex
	fs   *source.FileSet
	docs map[string]*Document
	opts parser.Options
}

func NewStore(opts parser.Options) *Store {
	return &Store{
		fs:   source.NewFileSet(),
		docs: make(map[string]*Document),
		opts: opts,
	}
}

// Open parses text and registers it under uri, replacing any previous
// document. path decides how the file is treated (.vbs, .inc).
func (s *Store) Open(uri, path string, version int32, text string) *Snapshot {
	s.mu.Lock()
	id := s.fs.AddVirtual(path, []byte(text))
	file := s.fs.Get(id)
	s.mu.Unlock()

	d := newDocument(uri, file, version, s.opts)

	s.mu.Lock()
	s.docs[uri] = d
	s.mu.Unlock()
	return d.Snapshot()
}

// Get returns the open document for uri.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[uri]
	return d, ok
}

// Must is Get for callers that already know uri is open.
func (s *Store) Must(uri string) (*Document, error) {
	d, ok := s.Get(uri)
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}
	return d, nil
}

// Close forgets uri and reports whether it was open.
func (s *Store) Close(uri string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[uri]
	delete(s.docs, uri)
	return ok
}

// URIs returns the open documents in sorted order.
func (s *Store) URIs() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		out = append(out, uri)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}
