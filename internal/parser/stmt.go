package parser

import (
	"aspkit/internal/diag"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

// blockBody parses statements and terminators until EOF or stop().
func (p *Parser) blockBody(stop func() bool) {
	for !p.atEOF() {
		if p.atOr(token.Newline, token.Colon) {
			p.bump()
			continue
		}
		if stop() {
			return
		}
		before := p.pos
		p.statement()
		if p.pos == before {
			p.bumpError()
		}
	}
}

// body parses a nested statement list up to the next closer keyword.
func (p *Parser) body() {
	m := p.start()
	p.blockBody(p.atCloser)
	p.complete(m, syntax.Block)
}

// statement parses one statement. A statement that cannot be completed
// becomes an ErrorNode from its first token to the next sync point.
func (p *Parser) statement() {
	m := p.start()
	startPos := p.pos
	saved := p.failed
	p.failed = false
	defer leave(&p.stmtDepth)

	if !p.enter(&p.stmtDepth) {
		// глубже не идём: остаток спана становится одним ErrorNode,
		// внешние блоки остаются открытыми до конца спана
		for !p.atEOF() {
			p.bump()
		}
		p.complete(m, syntax.ErrorNode)
		p.failed = saved
		return
	}

	kind := p.statementKind()
	if p.failed {
		p.flatten(m)
		p.syncStatement(startPos)
		kind = syntax.ErrorNode
	}
	p.complete(m, kind)
	p.failed = saved
}

func (p *Parser) statementKind() syntax.NodeKind {
	switch p.cur().Kind {
	case token.KwOption:
		return p.parseOption()
	case token.KwDim:
		p.bump()
		p.declarators(false)
		p.endOfStatement()
		return syntax.VariableDeclaration
	case token.KwPublic, token.KwPrivate, token.KwDefault:
		return p.parseModified()
	case token.KwConst:
		return p.parseConst()
	case token.KwReDim:
		return p.parseRedim()
	case token.KwSet, token.KwLet:
		p.bump()
		p.callTarget()
		if p.expect(token.Eq, diag.SynExpectEquals, "'='") {
			p.expr()
		}
		p.endOfStatement()
		return syntax.VariableAssignment
	case token.KwCall:
		p.bump()
		p.callTarget()
		p.endOfStatement()
		return syntax.CallStatement
	case token.KwStop:
		p.bump()
		p.endOfStatement()
		return syntax.CallStatement
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		if p.nth(1).Kind == token.KwEach {
			return p.parseForEach()
		}
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDo()
	case token.KwSelect:
		return p.parseSelect()
	case token.KwWith:
		return p.parseWith()
	case token.KwSub, token.KwFunction, token.KwClass:
		return p.parseDeclaration()
	case token.KwProperty:
		if isPropertyAccessor(p.nth(1).Kind) {
			return p.parseDeclaration()
		}
		return p.parseSimple()
	case token.KwExit:
		return p.parseExit()
	case token.KwOn:
		return p.parseOnError()
	case token.KwEnd, token.KwNext, token.KwLoop, token.KwWend:
		return p.parseBlockCloser()
	case token.KwElse, token.KwElseIf, token.KwCase:
		return p.parseStrayClause()
	default:
		return p.parseSimple()
	}
}

func (p *Parser) parseOption() syntax.NodeKind {
	p.bump()
	p.expect(token.KwExplicit, diag.SynExpectKeyword, "'Explicit'")
	p.endOfStatement()
	return syntax.OptionStatement
}

// parseModified handles Public/Private/Default prefixes.
func (p *Parser) parseModified() syntax.NodeKind {
	n := 0
	for isModifier(p.nth(n).Kind) {
		n++
	}
	switch k := p.nth(n).Kind; {
	case k == token.KwSub, k == token.KwFunction, k == token.KwClass, k == token.KwProperty:
		return p.parseDeclaration()
	case k == token.KwConst:
		return p.parseConst()
	}
	if p.at(token.KwDefault) {
		p.fail(diag.SynExpectKeyword, "expected 'Sub', 'Function' or 'Property' after 'Default'")
		return syntax.ErrorNode
	}
	p.bump()
	p.declarators(false)
	p.endOfStatement()
	return syntax.VariableDeclaration
}

// declarators parses "name[(bounds)] {, name[(bounds)]}".
func (p *Parser) declarators(redim bool) {
	for {
		m := p.start()
		if !p.name() {
			p.complete(m, syntax.VariableDeclarator)
			return
		}
		if p.at(token.LParen) {
			p.arrayBounds()
		} else if redim {
			p.fail(diag.SynUnexpectedToken, "expected array bounds, found "+describe(p.cur()))
		}
		p.complete(m, syntax.VariableDeclarator)
		if p.failed || !p.eat(token.Comma) {
			return
		}
	}
}

func (p *Parser) arrayBounds() {
	m := p.start()
	p.bump() // (
	for !p.at(token.RParen) && !p.atTerminator() {
		if _, ok := p.expr(); !ok {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynExpectRParen, "')'")
	p.complete(m, syntax.ArrayBounds)
}

func (p *Parser) parseConst() syntax.NodeKind {
	for isModifier(p.cur().Kind) {
		p.bump()
	}
	p.bump() // Const
	for {
		m := p.start()
		if p.name() && p.expect(token.Eq, diag.SynExpectEquals, "'='") {
			p.expr()
		}
		p.complete(m, syntax.ConstDeclarator)
		if p.failed || !p.eat(token.Comma) {
			break
		}
	}
	p.endOfStatement()
	return syntax.ConstDeclaration
}

func (p *Parser) parseRedim() syntax.NodeKind {
	p.bump()
	p.eat(token.KwPreserve)
	p.declarators(true)
	p.endOfStatement()
	return syntax.RedimStatement
}

func (p *Parser) parseExit() syntax.NodeKind {
	p.bump()
	switch p.cur().Kind {
	case token.KwDo, token.KwFor, token.KwFunction, token.KwProperty, token.KwSub:
		p.bump()
	default:
		p.fail(diag.SynExpectKeyword, "expected 'Do', 'For', 'Function', 'Property' or 'Sub', found "+describe(p.cur()))
		return syntax.ExitStatement
	}
	p.endOfStatement()
	return syntax.ExitStatement
}

// parseOnError: On Error Resume Next | On Error GoTo 0
func (p *Parser) parseOnError() syntax.NodeKind {
	p.bump()
	if !p.expect(token.KwError, diag.SynExpectKeyword, "'Error'") {
		return syntax.OnErrorStatement
	}
	switch {
	case p.eat(token.KwResume):
		p.expect(token.KwNext, diag.SynExpectKeyword, "'Next'")
	case p.eat(token.KwGoTo):
		if !p.eat(token.IntLit) {
			p.expect(token.Ident, diag.SynExpectIdentifier, "'0' or a label")
		}
	default:
		p.fail(diag.SynExpectKeyword, "expected 'Resume' or 'GoTo', found "+describe(p.cur()))
		return syntax.OnErrorStatement
	}
	p.endOfStatement()
	return syntax.OnErrorStatement
}

// parseBlockCloser handles a closer met outside of its construct. Its
// opener lives in an earlier block or is missing; pairing is checked later.
func (p *Parser) parseBlockCloser() syntax.NodeKind {
	switch p.bump().Kind {
	case token.KwEnd:
		if !isEndTarget(p.cur().Kind) {
			p.fail(diag.SynExpectKeyword, "expected block keyword after 'End', found "+describe(p.cur()))
			return syntax.BlockCloser
		}
		p.bump()
	case token.KwNext:
		p.nextNames()
	case token.KwLoop:
		p.loopCondition()
	}
	p.endOfStatement()
	return syntax.BlockCloser
}

// parseStrayClause handles Else, ElseIf and Case outside of their
// construct. Only the clause head is consumed; following statements stay
// siblings.
func (p *Parser) parseStrayClause() syntax.NodeKind {
	switch p.cur().Kind {
	case token.KwElse:
		p.bump()
		return syntax.ElseClause
	case token.KwElseIf:
		p.bump()
		p.expr()
		p.expect(token.KwThen, diag.SynExpectThen, "'Then'")
		return syntax.ElseIfClause
	default:
		p.bump()
		if p.eat(token.KwElse) {
			return syntax.CaseElseClause
		}
		p.caseValues()
		return syntax.CaseClause
	}
}

// parseSimple parses an assignment or a call statement.
func (p *Parser) parseSimple() syntax.NodeKind {
	if !p.atTargetStart() {
		p.fail(diag.SynUnexpectedToken, "unexpected "+describe(p.cur()))
		return syntax.ErrorNode
	}
	if _, ok := p.callTarget(); !ok {
		return syntax.CallStatement
	}
	if p.eat(token.Eq) {
		p.expr()
		p.endOfStatement()
		return syntax.VariableAssignment
	}
	if !p.atTerminator() && !p.at(token.KwElse) {
		p.bareArguments()
	}
	p.endOfStatement()
	return syntax.CallStatement
}

// bareArguments parses "a, , b" after a call target without parentheses.
func (p *Parser) bareArguments() {
	m := p.start()
	for !p.atTerminator() && !p.at(token.KwElse) {
		if p.eat(token.Comma) {
			continue
		}
		if _, ok := p.expr(); !ok {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.complete(m, syntax.ArgumentList)
}

// name съедает идентификатор (или контекстное ключевое слово)
func (p *Parser) name() bool {
	if isName(p.cur().Kind) {
		p.bump()
		return true
	}
	p.fail(diag.SynExpectIdentifier, "expected identifier, found "+describe(p.cur()))
	return false
}

func isModifier(k token.Kind) bool {
	return k == token.KwPublic || k == token.KwPrivate || k == token.KwDefault
}

func isPropertyAccessor(k token.Kind) bool {
	return k == token.KwGet || k == token.KwLet || k == token.KwSet
}

func isEndTarget(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwSub, token.KwFunction, token.KwSelect,
		token.KwWith, token.KwClass, token.KwProperty:
		return true
	default:
		return false
	}
}

// isName: keywords that VBScript does not reserve may name things.
func isName(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwDefault, token.KwError, token.KwExplicit,
		token.KwPreserve, token.KwProperty, token.KwStep:
		return true
	default:
		return false
	}
}
