package parser

import (
	"aspkit/internal/diag"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

// parseDeclaration: [Public|Private] [Default] Sub|Function|Property|Class
func (p *Parser) parseDeclaration() syntax.NodeKind {
	kind := syntax.SubDeclaration
	n := 0
	for isModifier(p.nth(n).Kind) {
		n++
	}
	var closer token.Kind
	switch p.nth(n).Kind {
	case token.KwFunction:
		kind, closer = syntax.FunctionDeclaration, token.KwFunction
	case token.KwProperty:
		kind, closer = syntax.PropertyDeclaration, token.KwProperty
	case token.KwClass:
		kind, closer = syntax.ClassDeclaration, token.KwClass
	default:
		closer = token.KwSub
	}

	p.header(func() {
		for isModifier(p.cur().Kind) {
			p.bump()
		}
		p.bump()
		if kind == syntax.PropertyDeclaration {
			if !isPropertyAccessor(p.cur().Kind) {
				p.fail(diag.SynExpectKeyword, "expected 'Get', 'Let' or 'Set', found "+describe(p.cur()))
				return
			}
			p.bump()
		}
		if !p.name() {
			return
		}
		if kind != syntax.ClassDeclaration && p.at(token.LParen) {
			p.parameters()
			if p.failed {
				return
			}
		}
		p.endOfStatement()
	})
	p.body()
	p.endClause(closer)
	return kind
}

// parameters: ( [ByVal|ByRef] name [()] {, ...} )
func (p *Parser) parameters() {
	m := p.start()
	p.bump()
	for !p.at(token.RParen) && !p.atTerminator() {
		pm := p.start()
		if p.atOr(token.KwByVal, token.KwByRef) {
			p.bump()
		}
		ok := p.name()
		if ok && p.eat(token.LParen) {
			ok = p.expect(token.RParen, diag.SynExpectRParen, "')'")
		}
		p.complete(pm, syntax.Parameter)
		if !ok || !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynExpectRParen, "')'")
	p.complete(m, syntax.ParameterList)
}
