package parser

import (
	"aspkit/internal/diag"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

// parseEcho parses the single expression of <%= ... %>. Line breaks around
// the expression are allowed; anything else after it turns the whole
// content into one ErrorNode.
func (p *Parser) parseEcho(interior source.Span) {
	for p.eat(token.Newline) {
	}
	if p.atEOF() {
		diag.ReportError(p.rep, diag.SynEmptyEcho, interior, "output block has no expression").Emit()
		return
	}

	m := p.start()
	startPos := p.pos
	p.failed = false
	if _, ok := p.expr(); ok {
		for p.eat(token.Newline) {
		}
		if !p.atEOF() {
			p.fail(diag.SynExpectEndOfStatement, "expected end of output block, found "+describe(p.cur()))
		}
	}
	if !p.failed {
		p.abandon(m)
		return
	}
	p.flatten(m)
	if p.pos == startPos {
		p.bump()
	}
	for !p.atEOF() {
		p.bump()
	}
	p.complete(m, syntax.ErrorNode)
}

// parseDirective parses Name[=Value] pairs of <%@ ... %>.
func (p *Parser) parseDirective() {
	for !p.atEOF() {
		if p.eat(token.Newline) {
			continue
		}
		tok := p.cur()
		m := p.start()
		if !isDirectiveWord(tok.Kind) {
			p.bump()
			p.complete(m, syntax.ErrorNode)
			if !tok.Kind.IsError() {
				diag.ReportError(p.rep, diag.SynBadDirective, tok.Span, "unexpected "+describe(tok)+" in directive").Emit()
			}
			continue
		}
		p.bump()
		if !p.eat(token.Eq) {
			p.complete(m, syntax.DirectiveAttribute)
			continue
		}
		if v := p.cur(); isDirectiveValue(v.Kind) {
			p.bump()
			p.complete(m, syntax.DirectiveAttribute)
			continue
		}
		p.complete(m, syntax.ErrorNode)
		if v := p.cur(); !v.Kind.IsError() {
			diag.ReportError(p.rep, diag.SynBadDirective, p.diagSpan(v),
				"expected value for directive attribute "+describe(tok)+", found "+describe(v)).Emit()
		}
	}
}

func isDirectiveWord(k token.Kind) bool {
	return k == token.Ident || k.IsKeyword()
}

func isDirectiveValue(k token.Kind) bool {
	switch k {
	case token.StringLit, token.IntLit, token.FloatLit, token.Ident:
		return true
	default:
		return k.IsKeyword()
	}
}
