package driver

import (
	"context"

	"aspkit/internal/diag"
	"aspkit/internal/lexer"
	"aspkit/internal/mode"
	"aspkit/internal/source"
	"aspkit/internal/token"
	"aspkit/internal/trace"
)

// TokenizeResult holds the token stream of one file: markup runs,
// delimiters and script tokens in source order, ending with EOF.
type TokenizeResult struct {
	Path   string
	File   *source.File
	Spans  []mode.Span
	Tokens []token.Token
	Bag    *diag.Bag
}

// TokenizeFile scans and lexes an already loaded file.
func TokenizeFile(file *source.File, opts Options) *TokenizeResult {
	sp := trace.Begin(opts.Tracer, trace.ScopePass, "tokenize_file", 0)
	defer sp.End(file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	spans := mode.Scan(file, mode.Options{Reporter: rep})
	lopts := opts.lexerOptions()
	lopts.Reporter = rep

	toks := make([]token.Token, 0, 64)
	for _, s := range spans {
		if s.Kind == mode.Markup {
			toks = append(toks, token.Token{Kind: token.MarkupText, Span: s.Range, Text: file.Text(s.Range), Channel: token.ChannelMarkup})
			continue
		}
		if n := s.OpenLen(); n > 0 {
			open := source.Span{File: file.ID, Start: s.Range.Start, End: s.Range.Start + n}
			toks = append(toks, token.Token{Kind: openerKind(s.Kind), Span: open, Text: file.Text(open)})
		}
		toks = append(toks, lexer.Lex(file, s.Interior(), lopts)...)
		if n := s.CloseLen(); n > 0 {
			closer := source.Span{File: file.ID, Start: s.Range.End - n, End: s.Range.End}
			toks = append(toks, token.Token{Kind: token.CloseBlock, Span: closer, Text: file.Text(closer)})
		}
	}
	toks = append(toks, token.Token{Kind: token.EOF, Span: file.Span().ToEnd()})
	if opts.WarningsAsErrors {
		bag.Escalate()
	}
	return &TokenizeResult{Path: file.Path, File: file, Spans: spans, Tokens: toks, Bag: bag}
}

func openerKind(k mode.Kind) token.Kind {
	switch k {
	case mode.ExpressionEcho:
		return token.OpenEcho
	case mode.Directive:
		return token.OpenDirective
	default:
		return token.OpenBlock
	}
}

// Tokenize loads and tokenizes one file.
func Tokenize(path string, opts Options) (*source.FileSet, *TokenizeResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir(path))
	id, err := fileSet.LoadWithCodepage(path, opts.Codepage)
	if err != nil {
		return nil, nil, err
	}
	return fileSet, TokenizeFile(fileSet.Get(id), opts), nil
}

// TokenizeDir tokenizes every matching file under dir in parallel. Files
// that fail to load get a result with an IO diagnostic and no tokens.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeResult, error) {
	paths, err := ListFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(baseDir(dir))
	files := loadAll(fileSet, paths, opts.Codepage)

	results := make([]TokenizeResult, len(files))
	err = forEach(ctx, len(files), opts.Jobs, func(_ context.Context, i int) error {
		f := files[i]
		if f.err != nil {
			results[i] = TokenizeResult{Path: f.path, Bag: loadFailure(f.path, f.err)}
			return nil
		}
		results[i] = *TokenizeFile(f.file, opts)
		return nil
	})
	return fileSet, results, err
}
