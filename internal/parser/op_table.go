package parser

import "aspkit/internal/token"

// Binding powers, lowest first. All binary operators are left-associative.
const (
	precImp        = 1
	precEqv        = 2
	precXor        = 3
	precOr         = 4
	precAnd        = 5
	precNot        = 6 // унарный Not: слабее сравнений
	precComparison = 7 // = <> < > <= >= Is
	precConcat     = 8 // &
	precAdditive   = 9 // + -
	precMod        = 10
	precIntDiv     = 11 // \
	precMul        = 12 // * /
	precNegate     = 13 // унарные - +
	precPower      = 14 // ^
)

// infixPrec returns the binding power of a binary operator, or -1.
func infixPrec(k token.Kind) int {
	switch k {
	case token.KwImp:
		return precImp
	case token.KwEqv:
		return precEqv
	case token.KwXor:
		return precXor
	case token.KwOr:
		return precOr
	case token.KwAnd:
		return precAnd
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwIs:
		return precComparison
	case token.Amp:
		return precConcat
	case token.Plus, token.Minus:
		return precAdditive
	case token.KwMod:
		return precMod
	case token.Backslash:
		return precIntDiv
	case token.Star, token.Slash:
		return precMul
	case token.Caret:
		return precPower
	default:
		return -1
	}
}
