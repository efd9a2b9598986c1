package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"aspkit/internal/diag"
	"aspkit/internal/source"
)

// ListFiles returns the matching files under root in sorted order. A root
// that is a file is returned as is, whatever its extension.
func ListFiles(root string, exts []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .aspkit-cache) пропускаем
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) })
}

// loaded is the outcome of reading one input file.
type loaded struct {
	path string
	file *source.File
	err  error
}

// loadAll reads files sequentially; FileSet is not safe for concurrent Add.
func loadAll(fileSet *source.FileSet, paths []string, codepage string) []loaded {
	out := make([]loaded, len(paths))
	for i, p := range paths {
		out[i].path = p
		id, err := fileSet.LoadWithCodepage(p, codepage)
		if err != nil {
			out[i].err = err
			continue
		}
		out[i].file = fileSet.Get(id)
	}
	return out
}

// loadFailure turns an I/O error into a file-less diagnostic.
func loadFailure(path string, err error) *diag.Bag {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("failed to load %s: %v", path, err)))
	return bag
}

// forEach runs fn for every index with at most jobs goroutines. Results are
// written by index, so fn needs no locking.
func forEach(ctx context.Context, n, jobs int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// baseDir picks the directory paths are reported relative to.
func baseDir(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return filepath.Dir(root)
	}
	return root
}
