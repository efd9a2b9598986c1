package lexer

import (
	"aspkit/internal/diag"
	"aspkit/internal/token"
)

// scanWhitespace коалесцирует пробелы и табы в один токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isBlank(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

// scanNewline: "\r\n", "\n" или одиночный "\r" — каждый отдельным токеном,
// так как каждый завершает инструкцию.
func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Bump() == '\r' {
		lx.cursor.Eat('\n')
	}
	return lx.emit(token.Newline, start)
}

// scanComment: ' до конца строки, без перевода строки.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.SkipToEOL()
	return lx.emit(token.Comment, start)
}

// scanUnderscore: "_" + пробелы + перевод строки — продолжение строки.
// Одиночный "_" в другом месте идентификатор не начинает.
func (lx *Lexer) scanUnderscore() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isBlank(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	switch lx.cursor.Peek() {
	case '\n', '\r':
		if lx.cursor.Bump() == '\r' {
			lx.cursor.Eat('\n')
		}
		return lx.emit(token.LineContinuation, start)
	}
	lx.cursor.Reset(start)
	lx.cursor.Bump()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "'_' is only valid as a line continuation at the end of a line")
	return tok
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\v'
}
