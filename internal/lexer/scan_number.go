package lexer

import (
	"aspkit/internal/diag"
	"aspkit/internal/token"
)

// Поддержка: 123, 1.5, .5, 1e10, 1.5E-3.
// Неверные формы ("1.", "1e", "12abc") дают ровно один NumberInvalid,
// чтобы парсеру было на что опереться.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	var problem string

	// целая часть (может отсутствовать у ".5")
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		if !isDec(lx.cursor.Peek()) {
			problem = "expected digit after '.'"
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); problem == "" && (b == 'e' || b == 'E') {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			problem = "expected digit in exponent"
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	return lx.finishNumber(kind, start, problem)
}

// &H1F, &O17, &17
func (lx *Lexer) scanRadixNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '&'

	kind := token.OctLit
	digit := isOct
	switch lx.cursor.Peek() {
	case 'h', 'H':
		kind, digit = token.HexLit, isHex
		lx.cursor.Bump()
	case 'o', 'O':
		lx.cursor.Bump()
	}

	n := 0
	for !lx.cursor.EOF() && digit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	var problem string
	if n == 0 {
		problem = "expected digits after radix prefix"
	}
	return lx.finishNumber(kind, start, problem)
}

// finishNumber поглощает приклеенные буквы/цифры ("12abc", "&H1G"),
// чтобы некорректное число осталось одним токеном.
func (lx *Lexer) finishNumber(kind token.Kind, start Mark, problem string) token.Token {
	glued := false
	for {
		b := lx.cursor.Peek()
		if lx.cursor.EOF() || !(isIdentContinueByte(b) || b == '.') {
			break
		}
		glued = true
		lx.cursor.Bump()
	}
	if glued && problem == "" {
		problem = "invalid character in numeric literal"
	}
	if problem == "" {
		return lx.emit(kind, start)
	}
	tok := lx.emit(token.NumberInvalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, problem)
	return tok
}
