package document

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"aspkit/internal/blocks"
	"aspkit/internal/diag"
	"aspkit/internal/incremental"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

// ErrStaleVersion is returned for an update older than the current snapshot.
var ErrStaleVersion = errors.New("stale document version")

// Snapshot is one published state of a document.
type Snapshot struct {
	URI     string
	Version int32
	// Tree carries parse and block pairing diagnostics.
	Tree   *syntax.Tree
	Blocks blocks.Result
	// Stats of the edit that produced this snapshot; zero after open.
	Stats incremental.Stats
}

func (s *Snapshot) File() *source.File { return s.Tree.File() }

func (s *Snapshot) Text() string { return s.Tree.Source() }

func (s *Snapshot) Diagnostics() []diag.Diagnostic { return s.Tree.Diagnostics() }

// Document is a single open text.
type Document struct {
	uri string

	mu       sync.Mutex
	base     *syntax.Tree // без диагностик блоков
	reparser *incremental.Reparser
	analyzer *blocks.Analyzer

	snap atomic.Pointer[Snapshot]
}

func newDocument(uri string, file *source.File, version int32, opts parser.Options) *Document {
	d := &Document{
		uri:      uri,
		reparser: incremental.New(opts),
		analyzer: blocks.NewAnalyzer(),
	}
	d.base = parser.ParseFile(file, opts)
	d.publish(version, incremental.Stats{Path: incremental.PathFull, Spans: len(d.base.Spans())})
	return d
}

func (d *Document) URI() string { return d.uri }

// Snapshot returns the latest published state.
func (d *Document) Snapshot() *Snapshot { return d.snap.Load() }

// Apply applies edits in order and publishes the result as version.
func (d *Document) Apply(version int32, edits ...incremental.Edit) (*Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.apply(version, edits)
}

// Replace swaps the whole text.
func (d *Document) Replace(version int32, text string) (*Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.apply(version, []incremental.Edit{{Start: 0, End: d.base.File().Len(), Text: text}})
}

func (d *Document) apply(version int32, edits []incremental.Edit) (*Snapshot, error) {
	if cur := d.snap.Load(); version < cur.Version {
		return cur, fmt.Errorf("%s: version %d after %d: %w", d.uri, version, cur.Version, ErrStaleVersion)
	}

	tree := d.base
	var st incremental.Stats
	for i, e := range edits {
		next, s, err := d.reparser.Apply(tree, e)
		if err != nil {
			return d.snap.Load(), fmt.Errorf("%s: %w", d.uri, err)
		}
		if i > 0 {
			s = merge(st, s)
		}
		tree, st = next, s
	}
	d.base = tree
	return d.publish(version, st), nil
}

func (d *Document) publish(version int32, st incremental.Stats) *Snapshot {
	res := d.analyzer.Analyze(d.base)
	s := &Snapshot{
		URI:     d.uri,
		Version: version,
		Tree:    d.base.WithDiagnostics(res.Diagnostics),
		Blocks:  res,
		Stats:   st,
	}
	d.snap.Store(s)
	return s
}

// merge folds the stats of consecutive edits; one full reparse makes the
// batch full.
func merge(acc, s incremental.Stats) incremental.Stats {
	if s.Path == incremental.PathFull {
		acc.Path = incremental.PathFull
	}
	acc.Spans = s.Spans
	acc.Reparsed += s.Reparsed
	acc.Reused = min(acc.Reused, s.Reused)
	return acc
}
