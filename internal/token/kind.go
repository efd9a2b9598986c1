package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token: unknown character, unterminated
	// string or date literal.
	Invalid Kind = iota
	// EOF marks the end of the scanned region.
	EOF

	// Whitespace is a run of spaces and tabs.
	Whitespace
	// Newline is "\n", "\r\n" or a lone "\r".
	Newline
	// LineContinuation is "_" followed by optional blanks and a newline.
	LineContinuation
	// Comment is "'" or "Rem" up to the end of the line.
	Comment

	// MarkupText is an opaque run of markup between script blocks.
	MarkupText
	// OpenBlock is "<%".
	OpenBlock
	// OpenEcho is "<%=".
	OpenEcho
	// OpenDirective is "<%@".
	OpenDirective
	// CloseBlock is "%>".
	CloseBlock

	// Ident represents an identifier, including [bracketed] names.
	Ident
	// StringLit is a double-quoted string with "" escapes.
	StringLit
	// IntLit is a decimal integer.
	IntLit
	// HexLit is &H1F.
	HexLit
	// OctLit is &O17 or &17.
	OctLit
	// FloatLit is 1.5, .5, 1e10.
	FloatLit
	// DateLit is #1/1/2000#.
	DateLit
	// NumberInvalid is malformed numeric text kept as one unit.
	NumberInvalid

	kwBegin
	KwAnd      // And
	KwAs       // As
	KwByRef    // ByRef
	KwByVal    // ByVal
	KwCall     // Call
	KwCase     // Case
	KwClass    // Class
	KwConst    // Const
	KwDefault  // Default
	KwDim      // Dim
	KwDo       // Do
	KwEach     // Each
	KwElse     // Else
	KwElseIf   // ElseIf
	KwEmpty    // Empty
	KwEnd      // End
	KwEqv      // Eqv
	KwError    // Error
	KwExit     // Exit
	KwExplicit // Explicit
	KwFalse    // False
	KwFor      // For
	KwFunction // Function
	KwGet      // Get
	KwGoTo     // GoTo
	KwIf       // If
	KwImp      // Imp
	KwIn       // In
	KwIs       // Is
	KwLet      // Let
	KwLoop     // Loop
	KwMe       // Me
	KwMod      // Mod
	KwNew      // New
	KwNext     // Next
	KwNot      // Not
	KwNothing  // Nothing
	KwNull     // Null
	KwOn       // On
	KwOption   // Option
	KwOr       // Or
	KwPreserve // Preserve
	KwPrivate  // Private
	KwProperty // Property
	KwPublic   // Public
	KwReDim    // ReDim
	KwResume   // Resume
	KwSelect   // Select
	KwSet      // Set
	KwStep     // Step
	KwStop     // Stop
	KwSub      // Sub
	KwThen     // Then
	KwTo       // To
	KwTrue     // True
	KwUntil    // Until
	KwWend     // Wend
	KwWhile    // While
	KwWith     // With
	KwXor      // Xor
	kwEnd

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Backslash // \
	Caret     // ^
	Amp       // &
	Eq        // =
	NotEq     // <>
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	Comma     // ,
	Dot       // .
	Colon     // :

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Whitespace:       "Whitespace",
	Newline:          "Newline",
	LineContinuation: "LineContinuation",
	Comment:          "Comment",
	MarkupText:       "MarkupText",
	OpenBlock:        "<%",
	OpenEcho:         "<%=",
	OpenDirective:    "<%@",
	CloseBlock:       "%>",
	Ident:            "Ident",
	StringLit:        "StringLit",
	IntLit:           "IntLit",
	HexLit:           "HexLit",
	OctLit:           "OctLit",
	FloatLit:         "FloatLit",
	DateLit:          "DateLit",
	NumberInvalid:    "NumberInvalid",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Backslash:        `\`,
	Caret:            "^",
	Amp:              "&",
	Eq:               "=",
	NotEq:            "<>",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	LParen:           "(",
	RParen:           ")",
	Comma:            ",",
	Dot:              ".",
	Colon:            ":",
}

func init() {
	for spelling, k := range keywords {
		kindNames[k] = canonicalSpelling(spelling)
	}
}

// String returns the kind name; keywords use their canonical spelling ("ElseIf").
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool { return k > kwBegin && k < kwEnd }

// IsTrivia reports whether k carries no grammar meaning: whitespace,
// comments and line continuations. Newlines are statement terminators
// and are not trivia.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineContinuation, Comment:
		return true
	default:
		return false
	}
}

// IsDelimiter reports whether k is one of the ASP block delimiters.
func (k Kind) IsDelimiter() bool {
	switch k {
	case OpenBlock, OpenEcho, OpenDirective, CloseBlock:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether k is a literal value kind.
func (k Kind) IsLiteral() bool {
	switch k {
	case StringLit, IntLit, HexLit, OctLit, FloatLit, DateLit, NumberInvalid,
		KwTrue, KwFalse, KwNothing, KwNull, KwEmpty:
		return true
	default:
		return false
	}
}

// IsOperator reports whether k is a punctuation or operator kind,
// including keyword operators (And, Or, Mod, ...).
func (k Kind) IsOperator() bool {
	if k >= Plus && k <= Colon {
		return true
	}
	switch k {
	case KwAnd, KwOr, KwXor, KwEqv, KwImp, KwNot, KwMod, KwIs:
		return true
	default:
		return false
	}
}

// IsError reports whether the token kind is an error-token.
func (k Kind) IsError() bool { return k == Invalid || k == NumberInvalid }

// KindCount returns the number of token kinds, for tables indexed by Kind.
func KindCount() int { return int(kindCount) }
