package parser

import (
	"aspkit/internal/diag"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

// parseIf разбирает и блочную, и однострочную форму.
// Однострочная форма не содержит Block: операторы лежат прямо в IfStatement.
func (p *Parser) parseIf() syntax.NodeKind {
	single := false
	p.header(func() {
		p.bump() // If
		if _, ok := p.expr(); !ok {
			return
		}
		if !p.expect(token.KwThen, diag.SynExpectThen, "'Then'") {
			return
		}
		single = !p.atTerminator()
	})
	if single {
		p.inlineStatements()
		if p.at(token.KwElse) {
			m := p.start()
			p.bump()
			p.inlineStatements()
			p.complete(m, syntax.ElseClause)
		}
		return syntax.IfStatement
	}

	p.body()
	for p.atOr(token.KwElseIf, token.KwElse) {
		m := p.start()
		if p.at(token.KwElseIf) {
			p.header(func() {
				p.bump()
				if _, ok := p.expr(); ok {
					p.expect(token.KwThen, diag.SynExpectThen, "'Then'")
				}
			})
			p.body()
			p.complete(m, syntax.ElseIfClause)
			continue
		}
		p.bump()
		p.body()
		p.complete(m, syntax.ElseClause)
	}
	p.endClause(token.KwIf)
	return syntax.IfStatement
}

// inlineStatements parses ':'-separated statements up to the end of line.
func (p *Parser) inlineStatements() {
	for !p.atEOF() && !p.at(token.Newline) && !p.at(token.KwElse) {
		if p.eat(token.Colon) {
			continue
		}
		before := p.pos
		p.statement()
		if p.pos == before {
			p.bumpError()
		}
	}
}

// endClause consumes "End <kw>" when present. A construct without it stays
// open; the block pairing pass decides whether that is an error.
func (p *Parser) endClause(kw token.Kind) {
	if !p.atEndOf(kw) {
		return
	}
	m := p.start()
	p.bump()
	p.bump()
	p.complete(m, syntax.EndClause)
}

func (p *Parser) parseFor() syntax.NodeKind {
	p.header(func() {
		p.bump() // For
		if !p.name() || !p.expect(token.Eq, diag.SynExpectEquals, "'='") {
			return
		}
		if _, ok := p.expr(); !ok {
			return
		}
		if !p.expect(token.KwTo, diag.SynExpectTo, "'To'") {
			return
		}
		if _, ok := p.expr(); !ok {
			return
		}
		if p.eat(token.KwStep) {
			if _, ok := p.expr(); !ok {
				return
			}
		}
		p.endOfStatement()
	})
	p.body()
	p.nextClause()
	return syntax.ForStatement
}

func (p *Parser) parseForEach() syntax.NodeKind {
	p.header(func() {
		p.bump() // For
		p.bump() // Each
		if !p.name() || !p.expect(token.KwIn, diag.SynExpectIn, "'In'") {
			return
		}
		if _, ok := p.expr(); ok {
			p.endOfStatement()
		}
	})
	p.body()
	p.nextClause()
	return syntax.ForEachStatement
}

func (p *Parser) nextClause() {
	if !p.at(token.KwNext) {
		return
	}
	m := p.start()
	p.bump()
	p.header(func() {
		p.nextNames()
		p.endOfStatement()
	})
	p.complete(m, syntax.EndClause)
}

// nextNames: необязательный список счётчиков после Next
func (p *Parser) nextNames() {
	if p.atTerminator() || !isName(p.cur().Kind) {
		return
	}
	for p.name() && p.eat(token.Comma) {
	}
}

func (p *Parser) parseWhile() syntax.NodeKind {
	p.header(func() {
		p.bump()
		if _, ok := p.expr(); ok {
			p.endOfStatement()
		}
	})
	p.body()
	if p.at(token.KwWend) {
		m := p.start()
		p.bump()
		p.complete(m, syntax.EndClause)
	}
	return syntax.WhileStatement
}

func (p *Parser) parseDo() syntax.NodeKind {
	p.header(func() {
		p.bump()
		p.loopCondition()
		if !p.failed {
			p.endOfStatement()
		}
	})
	p.body()
	if p.at(token.KwLoop) {
		m := p.start()
		p.bump()
		p.header(func() {
			p.loopCondition()
			if !p.failed {
				p.endOfStatement()
			}
		})
		p.complete(m, syntax.EndClause)
	}
	return syntax.DoLoopStatement
}

// loopCondition parses an optional "While cond" or "Until cond".
func (p *Parser) loopCondition() {
	if !p.atOr(token.KwWhile, token.KwUntil) {
		return
	}
	m := p.start()
	p.bump()
	p.expr()
	p.complete(m, syntax.LoopCondition)
}

func (p *Parser) parseSelect() syntax.NodeKind {
	p.header(func() {
		p.bump() // Select
		if !p.expect(token.KwCase, diag.SynExpectKeyword, "'Case'") {
			return
		}
		if _, ok := p.expr(); ok {
			p.endOfStatement()
		}
	})
	for !p.atEOF() {
		switch {
		case p.atOr(token.Newline, token.Colon):
			p.bump()
		case p.at(token.KwCase):
			p.caseClause()
		case p.atEndOf(token.KwSelect):
			p.endClause(token.KwSelect)
			return syntax.SelectStatement
		case p.atCloser():
			return syntax.SelectStatement
		default:
			// операторы до первого Case недопустимы, но разбираем их как обычно
			p.statement()
		}
	}
	return syntax.SelectStatement
}

func (p *Parser) caseClause() {
	m := p.start()
	if p.nth(1).Kind == token.KwElse {
		p.bump()
		p.bump()
		p.body()
		p.complete(m, syntax.CaseElseClause)
		return
	}
	p.header(func() {
		p.bump()
		p.caseValues()
		if !p.failed {
			p.endOfStatement()
		}
	})
	p.body()
	p.complete(m, syntax.CaseClause)
}

func (p *Parser) caseValues() {
	for {
		if _, ok := p.expr(); !ok || !p.eat(token.Comma) {
			return
		}
	}
}

func (p *Parser) parseWith() syntax.NodeKind {
	p.header(func() {
		p.bump()
		if _, ok := p.expr(); ok {
			p.endOfStatement()
		}
	})
	p.body()
	p.endClause(token.KwWith)
	return syntax.WithStatement
}
