package parser

import (
	"fmt"
	"slices"

	"aspkit/internal/diag"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

func (p *Parser) cur() token.Token { return p.nth(0) }

func (p *Parser) nth(n int) token.Token {
	if i := p.pos + n; i < len(p.sig) {
		return p.raw[p.sig[i]]
	}
	return p.eof
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.cur().Kind)
}

func (p *Parser) atEOF() bool { return p.pos >= len(p.sig) }

// adjacent reports whether the current token touches the previous one
// with no trivia in between.
func (p *Parser) adjacent() bool {
	if p.pos == 0 || p.atEOF() {
		return false
	}
	return p.sig[p.pos]-p.sig[p.pos-1] == 1
}

// bump съедает текущий токен; на EOF ничего не делает
func (p *Parser) bump() token.Token {
	tok := p.cur()
	if p.atEOF() {
		return tok
	}
	p.events = append(p.events, event{kind: evToken, tok: p.sig[p.pos]})
	p.pos++
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if !p.at(k) {
		return false
	}
	p.bump()
	return true
}

// expect съедает токен k или помечает текущую конструкцию как сломанную
func (p *Parser) expect(k token.Kind, code diag.Code, what string) bool {
	if p.eat(k) {
		return true
	}
	p.fail(code, "expected "+what+", found "+describe(p.cur()))
	return false
}

// fail marks the current production as failed and reports once per
// production. Error tokens were already reported by the lexer.
func (p *Parser) fail(code diag.Code, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	tok := p.cur()
	if tok.Kind.IsError() {
		return
	}
	diag.ReportError(p.rep, code, p.diagSpan(tok), msg).Emit()
}

// enter counts one nesting level on depth. Past the limit it fails the
// current production and returns false; leave must be called either way.
func (p *Parser) enter(depth *int) bool {
	*depth++
	if *depth <= p.limit {
		return true
	}
	p.fail(diag.SynTooDeep, fmt.Sprintf("nesting deeper than %d levels", p.limit))
	return false
}

func leave(depth *int) { *depth-- }

// diagSpan — для EOF и перевода строки подсвечиваем место сразу после
// предыдущего значимого токена
func (p *Parser) diagSpan(tok token.Token) source.Span {
	if (tok.Kind == token.EOF || tok.Kind == token.Newline) && p.pos > 0 {
		prev := p.raw[p.sig[p.pos-1]].Span
		return prev.ToEnd()
	}
	return tok.Span
}

func (p *Parser) atTerminator() bool {
	return p.atEOF() || p.atOr(token.Newline, token.Colon)
}

// atCloser reports whether the current token ends the body of an enclosing
// block construct.
func (p *Parser) atCloser() bool {
	return p.atOr(token.KwEnd, token.KwNext, token.KwLoop, token.KwWend,
		token.KwElse, token.KwElseIf, token.KwCase)
}

// atEndOf reports "End <kw>".
func (p *Parser) atEndOf(kw token.Kind) bool {
	return p.at(token.KwEnd) && p.nth(1).Kind == kw
}

// endOfStatement requires a terminator. Else is accepted for the
// single-line If form.
func (p *Parser) endOfStatement() {
	if p.atTerminator() || p.at(token.KwElse) {
		return
	}
	p.fail(diag.SynExpectEndOfStatement, "expected end of statement, found "+describe(p.cur()))
}

// syncStatement eats tokens up to a terminator or a closer keyword,
// always consuming at least one token.
func (p *Parser) syncStatement(startPos int) {
	if p.pos == startPos {
		p.bump()
	}
	for !p.atTerminator() && !p.atCloser() {
		p.bump()
	}
}

// header parses the head line of a block construct in its own failure
// scope. On failure the consumed tokens become an ErrorNode and the body
// is still parsed, so one bad header does not swallow the block.
func (p *Parser) header(fn func()) bool {
	m := p.start()
	startPos := p.pos
	saved := p.failed
	p.failed = false
	fn()
	ok := !p.failed
	if ok {
		p.abandon(m)
	} else {
		p.flatten(m)
		p.syncStatement(startPos)
		p.complete(m, syntax.ErrorNode)
	}
	p.failed = saved
	return ok
}

// bumpError оборачивает один токен в ErrorNode
func (p *Parser) bumpError() {
	m := p.start()
	tok := p.bump()
	p.complete(m, syntax.ErrorNode)
	if !tok.Kind.IsError() {
		diag.ReportError(p.rep, diag.SynUnexpectedToken, tok.Span, "unexpected "+describe(tok)).Emit()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of block"
	case token.Newline:
		return "end of line"
	case token.Colon:
		return "':'"
	}
	text := tok.Text
	if len(text) > 24 {
		text = text[:24] + "..."
	}
	return fmt.Sprintf("%q", text)
}
