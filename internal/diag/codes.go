package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexTokenTooLong       Code = 1004
	LexUnterminatedDate   Code = 1005
	LexUnterminatedName   Code = 1006

	// Разметка / сканер режимов
	ScnInfo              Code = 1500
	ScnUnterminatedBlock Code = 1501

	// Парсерные
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectExpression     Code = 2002
	SynExpectIdentifier     Code = 2003
	SynExpectThen           Code = 2004
	SynExpectEquals         Code = 2005
	SynExpectTo             Code = 2006
	SynExpectIn             Code = 2007
	SynExpectRParen         Code = 2008
	SynExpectEndOfStatement Code = 2009
	SynBadDirective         Code = 2010
	SynExpectKeyword        Code = 2011
	SynBadNumber            Code = 2012
	SynEmptyEcho            Code = 2013
	SynTooDeep              Code = 2014

	// Парные блоки
	BlkInfo                Code = 2500
	BlkMismatchedCloser    Code = 2501
	BlkUnclosed            Code = 2502
	BlkCloserWithoutOpener Code = 2503
	BlkClauseOutsideBlock  Code = 2504

	// Ввод-вывод и конфигурация
	IOLoadFileError  Code = 4001
	IOCacheError     Code = 4002
	CfgInvalidConfig Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexBadNumber:            "Malformed numeric literal",
	LexTokenTooLong:         "Token too long",
	LexUnterminatedDate:     "Unterminated date literal",
	LexUnterminatedName:     "Unterminated bracketed name",
	ScnInfo:                 "Scanner information",
	ScnUnterminatedBlock:    "Unterminated script block",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectExpression:     "Expected expression",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectThen:           "Expected 'Then'",
	SynExpectEquals:         "Expected '='",
	SynExpectTo:             "Expected 'To'",
	SynExpectIn:             "Expected 'In'",
	SynExpectRParen:         "Expected ')'",
	SynExpectEndOfStatement: "Expected end of statement",
	SynBadDirective:         "Malformed directive",
	SynExpectKeyword:        "Expected keyword",
	SynBadNumber:            "Invalid number in expression",
	SynEmptyEcho:            "Empty output block",
	SynTooDeep:              "Nesting too deep",
	BlkInfo:                 "Block information",
	BlkMismatchedCloser:     "Block closer does not match the open block",
	BlkUnclosed:             "Block is never closed",
	BlkCloserWithoutOpener:  "Block closer without a matching opener",
	BlkClauseOutsideBlock:   "Clause outside of its block",
	IOLoadFileError:         "Failed to load file",
	IOCacheError:            "Cache error",
	CfgInvalidConfig:        "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 1500:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 1500 && ic < 2000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 2000 && ic < 2500:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2500 && ic < 3000:
		return fmt.Sprintf("BLK%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

// Located reports whether diagnostics with this code point into source
// text. IO and CFG diagnostics carry a zero span.
func (c Code) Located() bool {
	return c < IOLoadFileError-1
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
