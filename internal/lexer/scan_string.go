package lexer

import (
	"aspkit/internal/diag"
	"aspkit/internal/token"
)

// "..." с удвоенной кавычкой как escape. Незакрытая строка — Invalid до
// конца строки (без перевода строки), чтобы ошибка оставалась локальной.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			if lx.cursor.Eat('"') {
				continue // "" внутри строки
			}
			return lx.emit(token.StringLit, start)
		case '\n', '\r':
			return lx.unterminated(start, diag.LexUnterminatedString, "unterminated string literal")
		}
		lx.cursor.Bump()
	}
	return lx.unterminated(start, diag.LexUnterminatedString, "unterminated string literal")
}

// #1/1/2000#, #10:30 PM#
func (lx *Lexer) scanDate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '#':
			lx.cursor.Bump()
			return lx.emit(token.DateLit, start)
		case '\n', '\r':
			return lx.unterminated(start, diag.LexUnterminatedDate, "unterminated date literal")
		}
		lx.cursor.Bump()
	}
	return lx.unterminated(start, diag.LexUnterminatedDate, "unterminated date literal")
}

func (lx *Lexer) unterminated(start Mark, code diag.Code, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(code, tok.Span, msg)
	return tok
}
