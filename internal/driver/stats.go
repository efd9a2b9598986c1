package driver

import (
	"bytes"
	"context"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"aspkit/internal/mode"
	"aspkit/internal/source"
)

// FileStats summarizes how a page splits between script and markup.
type FileStats struct {
	Path string
	// Lines counts every line; Blank ones hold only whitespace.
	Lines       int
	Blank       int
	ScriptLines int
	MarkupLines int
	// MixedLines carry both script and markup text.
	MixedLines int
	// Spans counts spans by kind name ("markup", "statement-block", ...).
	Spans map[string]int
	// Tags counts opening HTML tags in markup, lowercased.
	Tags map[string]int
	// Includes lists server-side include targets in source order.
	Includes []Include
	Err      error
}

// Include is one <!-- #include file|virtual="..." --> directive.
type Include struct {
	Virtual bool
	Target  string
	Offset  uint32
}

var includeRe = regexp.MustCompile(`(?i)^\s*#include\s+(file|virtual)\s*=\s*"([^"]*)"`)

// Stats classifies each line of file by the spans its non-blank bytes fall
// into, and walks the markup with an HTML tokenizer.
func Stats(file *source.File) FileStats {
	st := FileStats{
		Path:  file.Path,
		Spans: make(map[string]int),
		Tags:  make(map[string]int),
	}
	spans := mode.Scan(file, mode.Options{})
	for _, s := range spans {
		st.Spans[s.Kind.String()]++
	}
	countLines(file.Content, spans, &st)
	scanMarkup(file.Content, spans, &st)
	return st
}

func countLines(content []byte, spans []mode.Span, st *FileStats) {
	si := 0
	start := 0
	for start <= len(content) {
		end := bytes.IndexByte(content[start:], '\n')
		if end < 0 {
			end = len(content)
		} else {
			end += start
		}
		var script, markup bool
		for off := start; off < end; off++ {
			c := content[off]
			if c == ' ' || c == '\t' || c == '\r' {
				continue
			}
			for si < len(spans)-1 && uint32(off) >= spans[si].Range.End {
				si++
			}
			if spans[si].Kind.IsScript() {
				script = true
			} else {
				markup = true
			}
		}
		st.Lines++
		switch {
		case script && markup:
			st.MixedLines++
		case script:
			st.ScriptLines++
		case markup:
			st.MarkupLines++
		default:
			st.Blank++
		}
		start = end + 1
	}
}

// scanMarkup tokenizes the markup with every script span replaced by one
// 'x', so tags holding <%= %> in attribute values stay intact.
func scanMarkup(content []byte, spans []mode.Span, st *FileStats) {
	var buf bytes.Buffer
	// смещение в buf -> смещение в исходнике
	type piece struct{ at, src int }
	var pieces []piece
	for _, s := range spans {
		if s.Kind.IsScript() {
			buf.WriteByte('x')
			continue
		}
		pieces = append(pieces, piece{at: buf.Len(), src: int(s.Range.Start)})
		buf.Write(content[s.Range.Start:s.Range.End])
	}
	if len(pieces) == 0 {
		return
	}
	origin := func(at int) uint32 {
		i := sort.Search(len(pieces), func(k int) bool { return pieces[k].at > at }) - 1
		if i < 0 {
			return 0
		}
		return source.MustOffset(pieces[i].src + at - pieces[i].at)
	}

	z := html.NewTokenizer(bytes.NewReader(buf.Bytes()))
	pos := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		at := pos
		pos += len(z.Raw())
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			st.Tags[strings.ToLower(string(name))]++
		case html.CommentToken:
			m := includeRe.FindSubmatch(z.Text())
			if m == nil {
				continue
			}
			st.Includes = append(st.Includes, Include{
				Virtual: strings.EqualFold(string(m[1]), "virtual"),
				Target:  string(m[2]),
				Offset:  origin(at),
			})
		}
	}
}

// StatsDir computes Stats for every matching file under root.
func StatsDir(ctx context.Context, root string, opts Options) ([]FileStats, error) {
	paths, err := ListFiles(root, opts.extensions())
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(baseDir(root))
	files := loadAll(fileSet, paths, opts.Codepage)
	out := make([]FileStats, len(files))
	err = forEach(ctx, len(files), opts.Jobs, func(_ context.Context, i int) error {
		if files[i].err != nil {
			out[i] = FileStats{Path: files[i].path, Err: files[i].err}
			return nil
		}
		out[i] = Stats(files[i].file)
		return nil
	})
	return out, err
}
