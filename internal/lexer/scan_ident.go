package lexer

import (
	"aspkit/internal/diag"
	"aspkit/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Регистр ключевых слов не важен. Token.Text — ровно исходный срез.
// "Rem" как отдельное слово открывает комментарий до конца строки.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if len(tok.Text) == 3 && token.EqualFold(tok.Text, "rem") {
		lx.cursor.SkipToEOL()
		return lx.emit(token.Comment, start)
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanBracketName: [любой текст] — экранированный идентификатор.
func (lx *Lexer) scanBracketName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '['
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ']':
			lx.cursor.Bump()
			return lx.emit(token.Ident, start)
		case '\n', '\r':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedName, tok.Span, "bracketed name is not closed with ']'")
			return tok
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedName, tok.Span, "bracketed name is not closed with ']'")
	return tok
}
