package token

import (
	"strings"

	"golang.org/x/text/cases"
)

var keywords = map[string]Kind{
	"and":      KwAnd,
	"as":       KwAs,
	"byref":    KwByRef,
	"byval":    KwByVal,
	"call":     KwCall,
	"case":     KwCase,
	"class":    KwClass,
	"const":    KwConst,
	"default":  KwDefault,
	"dim":      KwDim,
	"do":       KwDo,
	"each":     KwEach,
	"else":     KwElse,
	"elseif":   KwElseIf,
	"empty":    KwEmpty,
	"end":      KwEnd,
	"eqv":      KwEqv,
	"error":    KwError,
	"exit":     KwExit,
	"explicit": KwExplicit,
	"false":    KwFalse,
	"for":      KwFor,
	"function": KwFunction,
	"get":      KwGet,
	"goto":     KwGoTo,
	"if":       KwIf,
	"imp":      KwImp,
	"in":       KwIn,
	"is":       KwIs,
	"let":      KwLet,
	"loop":     KwLoop,
	"me":       KwMe,
	"mod":      KwMod,
	"new":      KwNew,
	"next":     KwNext,
	"not":      KwNot,
	"nothing":  KwNothing,
	"null":     KwNull,
	"on":       KwOn,
	"option":   KwOption,
	"or":       KwOr,
	"preserve": KwPreserve,
	"private":  KwPrivate,
	"property": KwProperty,
	"public":   KwPublic,
	"redim":    KwReDim,
	"resume":   KwResume,
	"select":   KwSelect,
	"set":      KwSet,
	"step":     KwStep,
	"stop":     KwStop,
	"sub":      KwSub,
	"then":     KwThen,
	"to":       KwTo,
	"true":     KwTrue,
	"until":    KwUntil,
	"wend":     KwWend,
	"while":    KwWhile,
	"with":     KwWith,
	"xor":      KwXor,
}

// неоднословные/смешанные написания
var canonical = map[string]string{
	"byref":  "ByRef",
	"byval":  "ByVal",
	"elseif": "ElseIf",
	"goto":   "GoTo",
	"redim":  "ReDim",
}

func canonicalSpelling(lower string) string {
	if s, ok := canonical[lower]; ok {
		return s
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Fold returns the case-folded form of a script identifier or keyword.
// ASCII input takes a fast path; anything else goes through Unicode
// case folding.
func Fold(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			// cases.Caser хранит состояние, поэтому новый на каждый вызов
			return cases.Fold().String(s)
		}
	}
	return strings.ToLower(s)
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Регистр не важен: "END", "End" и "end" дают KwEnd.
func LookupKeyword(ident string) (Kind, bool) {
	if len(ident) < 2 || len(ident) > 8 {
		return Ident, false
	}
	k, ok := keywords[Fold(ident)]
	return k, ok
}

// EqualFold compares two script names case-insensitively.
func EqualFold(a, b string) bool {
	if len(a) == len(b) {
		return strings.EqualFold(a, b)
	}
	return Fold(a) == Fold(b)
}

var builtinObjects = map[string]string{
	"response":      "Response",
	"request":       "Request",
	"server":        "Server",
	"session":       "Session",
	"application":   "Application",
	"err":           "Err",
	"objectcontext": "ObjectContext",
}

// BuiltinObject reports whether name is one of the ASP intrinsic objects
// and returns its canonical spelling.
func BuiltinObject(name string) (string, bool) {
	s, ok := builtinObjects[Fold(name)]
	return s, ok
}
