package parser

import (
	"aspkit/internal/diag"
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

// expr parses a full expression.
func (p *Parser) expr() (completed, bool) {
	return p.exprPrec(0)
}

func (p *Parser) exprPrec(minPrec int) (completed, bool) {
	defer leave(&p.exprDepth)
	if !p.enter(&p.exprDepth) {
		return completed{}, false
	}
	lhs, ok := p.unary()
	if !ok {
		return lhs, false
	}
	for {
		prec := infixPrec(p.cur().Kind)
		if prec < 0 || prec < minPrec {
			return lhs, true
		}
		m := p.precede(lhs)
		p.bump()
		_, ok := p.exprPrec(prec + 1)
		lhs = p.complete(m, syntax.BinaryExpression)
		if !ok {
			return lhs, false
		}
	}
}

func (p *Parser) unary() (completed, bool) {
	var operandPrec int
	switch p.cur().Kind {
	case token.KwNot:
		// Not a = b разбирается как Not (a = b)
		operandPrec = precComparison
	case token.Minus, token.Plus:
		// -2 ^ 2 = -(2 ^ 2)
		operandPrec = precPower
	default:
		lhs, ok := p.primary()
		if !ok {
			return lhs, false
		}
		return p.postfix(lhs, false)
	}
	m := p.start()
	p.bump()
	_, ok := p.exprPrec(operandPrec)
	return p.complete(m, syntax.UnaryExpression), ok
}

func (p *Parser) primary() (completed, bool) {
	tok := p.cur()
	switch {
	case tok.Kind == token.NumberInvalid:
		p.fail(diag.SynBadNumber, "invalid number "+describe(tok))
		return completed{}, false
	case tok.Kind.IsLiteral():
		m := p.start()
		p.bump()
		return p.complete(m, syntax.LiteralExpression), true
	case isName(tok.Kind), tok.Kind == token.KwMe:
		m := p.start()
		p.bump()
		return p.complete(m, syntax.NameExpression), true
	case tok.Kind == token.LParen:
		m := p.start()
		p.bump()
		_, ok := p.expr()
		if ok {
			ok = p.expect(token.RParen, diag.SynExpectRParen, "')'")
		}
		return p.complete(m, syntax.ParenthesizedExpression), ok
	case tok.Kind == token.KwNew:
		m := p.start()
		p.bump()
		ok := p.name()
		return p.complete(m, syntax.NewExpression), ok
	case tok.Kind == token.Dot:
		// .Member внутри With; блок With может быть в другом спане
		m := p.start()
		p.bump()
		ok := p.memberName()
		return p.complete(m, syntax.MemberAccessExpression), ok
	}
	p.fail(diag.SynExpectExpression, "expected expression, found "+describe(tok))
	return completed{}, false
}

// postfix parses member access and call suffixes. In statement heads a
// parenthesis separated by blanks starts the argument list instead
// ("Response.Write (a) & b").
func (p *Parser) postfix(lhs completed, statementHead bool) (completed, bool) {
	for {
		switch {
		case p.at(token.Dot):
			m := p.precede(lhs)
			p.bump()
			ok := p.memberName()
			lhs = p.complete(m, syntax.MemberAccessExpression)
			if !ok {
				return lhs, false
			}
		case p.at(token.LParen) && (!statementHead || p.adjacent()):
			m := p.precede(lhs)
			ok := p.arguments()
			lhs = p.complete(m, syntax.CallExpression)
			if !ok {
				return lhs, false
			}
		default:
			return lhs, true
		}
	}
}

// memberName: after '.' any word is allowed (Response.End, rs.Fields.Item).
func (p *Parser) memberName() bool {
	if k := p.cur().Kind; k == token.Ident || k.IsKeyword() {
		p.bump()
		return true
	}
	p.fail(diag.SynExpectIdentifier, "expected member name, found "+describe(p.cur()))
	return false
}

// arguments parses "( [arg] {, [arg]} )". Omitted arguments are allowed.
func (p *Parser) arguments() bool {
	m := p.start()
	p.bump()
	ok := true
	for !p.at(token.RParen) && !p.atTerminator() {
		if p.eat(token.Comma) {
			continue
		}
		if _, ok = p.expr(); !ok {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if ok {
		ok = p.expect(token.RParen, diag.SynExpectRParen, "')'")
	}
	p.complete(m, syntax.ArgumentList)
	return ok
}

// callTarget parses the head of an assignment or call statement.
func (p *Parser) callTarget() (completed, bool) {
	tok := p.cur()
	var lhs completed
	switch {
	case isName(tok.Kind), tok.Kind == token.KwMe:
		m := p.start()
		p.bump()
		lhs = p.complete(m, syntax.NameExpression)
	case tok.Kind == token.Dot:
		m := p.start()
		p.bump()
		ok := p.memberName()
		lhs = p.complete(m, syntax.MemberAccessExpression)
		if !ok {
			return lhs, false
		}
	default:
		p.fail(diag.SynExpectIdentifier, "expected identifier, found "+describe(tok))
		return completed{}, false
	}
	return p.postfix(lhs, true)
}

func (p *Parser) atTargetStart() bool {
	k := p.cur().Kind
	return isName(k) || k == token.KwMe || k == token.Dot
}
