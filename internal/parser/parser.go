package parser

import (
	"aspkit/internal/diag"
	"aspkit/internal/lexer"
	"aspkit/internal/mode"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
	"aspkit/internal/trace"
)

// DefaultMaxDepth bounds statement and expression nesting.
const DefaultMaxDepth = 500

type Options struct {
	// MaxErrors caps diagnostics collected per span (0 = no limit).
	MaxErrors int
	// MaxTokenLength is passed to the lexer.
	MaxTokenLength int
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
	Tracer   trace.Tracer
	// Reporter receives scanner diagnostics of ParseFile. Span-level
	// diagnostics always end up in the tree.
	Reporter diag.Reporter
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

func (o Options) lexerOptions(r diag.Reporter) lexer.Options {
	return lexer.Options{Reporter: r, MaxTokenLength: o.MaxTokenLength}
}

// Parser — состояние разбора одного спана
type Parser struct {
	file   *source.File
	raw    []token.Token // все токены спана, включая trivia
	sig    []int         // индексы значимых токенов в raw
	pos    int           // позиция в sig
	eof    token.Token
	events []event
	rep    diag.Reporter
	failed bool
	// вложенность операторов и выражений считается отдельно,
	// каждая ограничена limit
	stmtDepth int
	exprDepth int
	limit     int
}

func newParser(file *source.File, raw []token.Token, end uint32, rep diag.Reporter, limit int) *Parser {
	sig := make([]int, 0, len(raw))
	for i, t := range raw {
		if !t.IsTrivia() {
			sig = append(sig, i)
		}
	}
	return &Parser{
		file:   file,
		raw:    raw,
		sig:    sig,
		eof:    token.Token{Kind: token.EOF, Span: source.Span{File: file.ID, Start: end, End: end}},
		events: make([]event, 0, len(sig)*3),
		rep:    rep,
		limit:  limit,
	}
}

// ParseFile scans file into mode spans and parses each of them.
func ParseFile(file *source.File, opts Options) *syntax.Tree {
	sp := trace.Begin(opts.Tracer, trace.ScopePass, "parse_file", 0)
	defer sp.End(file.Path)

	bag := diag.NewBag(opts.MaxErrors)
	spans := mode.Scan(file, mode.Options{Reporter: diag.BagReporter{Bag: bag}})
	parts := make([]syntax.SpanTree, len(spans))
	for i, s := range spans {
		parts[i] = ParseSpan(file, s, opts)
	}
	if opts.Reporter != nil {
		for _, d := range bag.Items() {
			opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	return syntax.Assemble(file, spans, parts, bag.Items())
}

// ParseSpan parses one mode span in isolation. The result does not depend
// on any other span, so it can be reused while the span text is unchanged.
func ParseSpan(file *source.File, s mode.Span, opts Options) syntax.SpanTree {
	if s.Kind == mode.Markup {
		return syntax.SpanTree{Green: syntax.Markup(s.Range.Len())}
	}
	sp := trace.Begin(opts.Tracer, trace.ScopeSpan, "parse_span", 0)
	defer sp.End(s.Kind.String())

	bag := diag.NewBag(opts.MaxErrors)
	rep := diag.BagReporter{Bag: bag}
	interior := s.Interior()
	raw := lexer.Lex(file, interior, opts.lexerOptions(rep))
	p := newParser(file, raw, interior.End, rep, opts.maxDepth())

	var b syntax.Builder
	switch s.Kind {
	case mode.ExpressionEcho:
		b.StartNode(syntax.EchoBlock)
		b.Token(token.OpenEcho, s.OpenLen())
		p.parseEcho(interior)
	case mode.Directive:
		b.StartNode(syntax.DirectiveBlock)
		b.Token(token.OpenDirective, s.OpenLen())
		p.parseDirective()
	case mode.StatementBlock:
		b.StartNode(syntax.ScriptBlock)
		b.Token(token.OpenBlock, s.OpenLen())
		p.parseBlock()
	default:
		b.StartNode(syntax.ScriptBlock)
		p.parseBlock()
	}
	p.sink(&b)
	if n := s.CloseLen(); n > 0 {
		b.Token(token.CloseBlock, n)
	}
	b.FinishNode()

	return syntax.SpanTree{
		Green: b.Finish(),
		Diags: syntax.Relative(bag.Items(), s.Range.Start),
	}
}

// ParseScript parses the whole file as one script region, ignoring the
// file extension.
func ParseScript(file *source.File, opts Options) *syntax.Tree {
	spans := []mode.Span{{Kind: mode.Script, Range: file.Span()}}
	return syntax.Assemble(file, spans, []syntax.SpanTree{ParseSpan(file, spans[0], opts)}, nil)
}

// ParseText parses src as a virtual file. Handy for tests and the REPL.
func ParseText(fs *source.FileSet, name, src string, opts Options) *syntax.Tree {
	id := fs.AddVirtual(name, []byte(src))
	return ParseFile(fs.Get(id), opts)
}

// parseBlock разбирает содержимое <% ... %> или .vbs файла
func (p *Parser) parseBlock() {
	m := p.start()
	p.blockBody(func() bool { return false })
	p.complete(m, syntax.Block)
}
