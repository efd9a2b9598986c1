package lexer

import (
	"fmt"

	"aspkit/internal/diag"
	"aspkit/internal/token"
)

// Жадность: сначала 2-символьные (<>, <=, >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('<', '>'):
		return lx.emit(token.NotEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	}

	if r, sz := lx.peekRune(); sz > 1 || r >= utf8RuneSelf {
		lx.bumpRune()
		return lx.unknown(start, r)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '\\':
		return lx.emit(token.Backslash, start)
	case '^':
		return lx.emit(token.Caret, start)
	case '&':
		return lx.emit(token.Amp, start)
	case '=':
		return lx.emit(token.Eq, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '.':
		return lx.emit(token.Dot, start)
	case ':':
		return lx.emit(token.Colon, start)
	default:
		return lx.unknown(start, rune(ch))
	}
}

func (lx *Lexer) unknown(start Mark, r rune) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}
