package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"aspkit/internal/blocks"
	"aspkit/internal/diag"
	"aspkit/internal/observ"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
	"aspkit/internal/trace"
)

// ParseResult is one file after parsing and block pairing.
type ParseResult struct {
	Path string
	File *source.File
	// Tree is nil when the file failed to load or the result came from
	// the cache.
	Tree   *syntax.Tree
	Blocks blocks.Result
	Bag    *diag.Bag
	Cached bool
	Timing *observ.Report
}

// ParseFile parses an already loaded file and pairs its blocks.
func ParseFile(file *source.File, opts Options) *ParseResult {
	sp := trace.Begin(opts.Tracer, trace.ScopePass, "check_file", 0)
	defer sp.End(file.Path)

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	idx := timer.Begin("parse")
	tree := parser.ParseFile(file, opts.parserOptions())
	timer.End(idx, "")

	idx = timer.Begin("blocks")
	res := blocks.Analyze(tree)
	timer.End(idx, "")
	tree = tree.WithDiagnostics(res.Diagnostics)

	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.AddAll(tree.Diagnostics())
	if opts.WarningsAsErrors {
		bag.Escalate()
	}
	bag.Sort()

	out := &ParseResult{Path: file.Path, File: file, Tree: tree, Blocks: res, Bag: bag}
	if timer != nil {
		r := timer.Report()
		out.Timing = &r
	}
	return out
}

// Parse loads and parses one file.
func Parse(path string, opts Options) (*source.FileSet, *ParseResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir(path))
	id, err := fileSet.LoadWithCodepage(path, opts.Codepage)
	if err != nil {
		return nil, nil, err
	}
	return fileSet, ParseFile(fileSet.Get(id), opts), nil
}

// Check parses every matching file under root in parallel. With
// opts.Cache set, files whose content and options were seen before are
// answered from the cache and carry no tree.
func Check(ctx context.Context, root string, opts Options) (*source.FileSet, []ParseResult, error) {
	sp := trace.Begin(opts.Tracer, trace.ScopeDriver, "check", trace.ParentID(ctx))
	defer sp.End(root)

	paths, err := ListFiles(root, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}
	fileSet := source.NewFileSetWithBase(baseDir(root))
	files := loadAll(fileSet, paths, opts.Codepage)

	results := make([]ParseResult, len(files))
	err = forEach(ctx, len(files), opts.Jobs, func(_ context.Context, i int) error {
		results[i] = checkOne(files[i], opts)
		return nil
	})
	sp.WithExtra("files", strconv.Itoa(len(files)))
	return fileSet, results, err
}

func checkOne(f loaded, opts Options) ParseResult {
	start := time.Now()
	if f.err != nil {
		emit(opts.Progress, Event{File: f.path, Stage: StageLoad, Status: StatusError, Err: f.err})
		return ParseResult{Path: f.path, Bag: loadFailure(f.path, f.err)}
	}

	if ds, ok := opts.Cache.lookup(f.file, opts); ok {
		bag := diag.NewBag(0)
		bag.AddAll(ds)
		emit(opts.Progress, Event{File: f.path, Stage: StageCache, Status: StatusDone, Elapsed: time.Since(start)})
		return ParseResult{Path: f.path, File: f.file, Bag: bag, Cached: true}
	}

	emit(opts.Progress, Event{File: f.path, Stage: StageParse, Status: StatusWorking})
	res := ParseFile(f.file, opts)
	if err := opts.Cache.store(f.file, opts, res.Bag.Items()); err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, fmt.Sprintf("cache write for %s failed: %v", f.path, err)))
	}
	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: f.path, Stage: StageBlocks, Status: status, Elapsed: time.Since(start)})
	return *res
}
