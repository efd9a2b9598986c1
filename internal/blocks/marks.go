package blocks

import (
	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

// family groups constructs that share a closer (For and For Each both end
// with Next).
type family uint8

const (
	famNone family = iota
	famIf
	famFor
	famWhile
	famDo
	famSelect
	famWith
	famSub
	famFunction
	famProperty
	famClass
)

var familyOpener = [...]string{
	famNone:     "?",
	famIf:       "If",
	famFor:      "For",
	famWhile:    "While",
	famDo:       "Do",
	famSelect:   "Select Case",
	famWith:     "With",
	famSub:      "Sub",
	famFunction: "Function",
	famProperty: "Property",
	famClass:    "Class",
}

var familyCloser = [...]string{
	famNone:     "?",
	famIf:       "End If",
	famFor:      "Next",
	famWhile:    "Wend",
	famDo:       "Loop",
	famSelect:   "End Select",
	famWith:     "End With",
	famSub:      "End Sub",
	famFunction: "End Function",
	famProperty: "End Property",
	famClass:    "End Class",
}

func familyOf(k syntax.NodeKind) family {
	switch k {
	case syntax.IfStatement:
		return famIf
	case syntax.ForStatement, syntax.ForEachStatement:
		return famFor
	case syntax.WhileStatement:
		return famWhile
	case syntax.DoLoopStatement:
		return famDo
	case syntax.SelectStatement:
		return famSelect
	case syntax.WithStatement:
		return famWith
	case syntax.SubDeclaration:
		return famSub
	case syntax.FunctionDeclaration:
		return famFunction
	case syntax.PropertyDeclaration:
		return famProperty
	case syntax.ClassDeclaration:
		return famClass
	default:
		return famNone
	}
}

func familyOfEnd(k token.Kind) family {
	switch k {
	case token.KwIf:
		return famIf
	case token.KwSelect:
		return famSelect
	case token.KwWith:
		return famWith
	case token.KwSub:
		return famSub
	case token.KwFunction:
		return famFunction
	case token.KwProperty:
		return famProperty
	case token.KwClass:
		return famClass
	default:
		return famNone
	}
}

type markKind uint8

const (
	markOpen markKind = iota
	markClose
	// markDrop: a closer that failed to parse; it closes the innermost
	// construct silently.
	markDrop
	markClause
)

type relSpan struct{ start, end uint32 }

// mark is one structural event of a span, in span-relative offsets.
type mark struct {
	kind    markKind
	fam     family
	node    syntax.NodeKind
	keyword relSpan // ключевое слово открывающей/закрывающей конструкции
	whole   relSpan
	quiet   bool // заголовок не разобран: не шумим про эту конструкцию
	label   string
}

// collect walks one span's green tree.
func collect(g *syntax.GreenNode) []mark {
	var out []mark
	walk(g, 0, syntax.NodeInvalid, &out)
	return out
}

func walk(g *syntax.GreenNode, off uint32, parent syntax.NodeKind, out *[]mark) {
	for _, c := range g.Children() {
		if c.Node == nil {
			off += c.Token.Width
			continue
		}
		n := c.Node
		whole := relSpan{off, off + n.Width()}
		switch k := n.Kind(); {
		case familyOf(k) != famNone:
			if k == syntax.IfStatement && !hasChild(n, syntax.Block) {
				// однострочный If закрыт сам по себе
				walk(n, off, k, out)
				break
			}
			kw, _, _ := firstWord(n, off, true)
			*out = append(*out, mark{
				kind: markOpen, fam: familyOf(k), node: k,
				keyword: kw, whole: whole, quiet: startsWithError(n),
			})
			walk(n, off, k, out)

		case k == syntax.EndClause || k == syntax.BlockCloser:
			if fam, label := closerOf(n, off); fam != famNone {
				*out = append(*out, mark{kind: markClose, fam: fam, node: k, keyword: whole, whole: whole, label: label})
			}

		case k == syntax.ErrorNode:
			if _, tk, ok := firstWord(n, off, false); ok {
				switch tk {
				case token.KwEnd, token.KwNext, token.KwLoop, token.KwWend:
					*out = append(*out, mark{kind: markDrop, node: k, keyword: whole, whole: whole})
				}
			}

		case (k == syntax.ElseClause || k == syntax.ElseIfClause) && parent != syntax.IfStatement:
			kw, _, _ := firstWord(n, off, false)
			*out = append(*out, mark{kind: markClause, fam: famIf, node: k, keyword: kw, whole: whole})

		case (k == syntax.CaseClause || k == syntax.CaseElseClause) && parent != syntax.SelectStatement:
			kw, _, _ := firstWord(n, off, false)
			*out = append(*out, mark{kind: markClause, fam: famSelect, node: k, keyword: kw, whole: whole})

		default:
			walk(n, off, k, out)
		}
		off += n.Width()
	}
}

func hasChild(g *syntax.GreenNode, kind syntax.NodeKind) bool {
	for _, c := range g.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			return true
		}
	}
	return false
}

// startsWithError reports a construct whose header failed to parse.
func startsWithError(g *syntax.GreenNode) bool {
	ch := g.Children()
	return len(ch) > 0 && ch[0].Node != nil && ch[0].Node.Kind() == syntax.ErrorNode
}

// firstWord returns the first significant token of g. With skipModifiers
// Public/Private/Default are passed over.
func firstWord(g *syntax.GreenNode, off uint32, skipModifiers bool) (relSpan, token.Kind, bool) {
	var (
		sp    relSpan
		kind  token.Kind
		found bool
	)
	eachToken(g, off, func(k token.Kind, start, end uint32) bool {
		if k.IsTrivia() {
			return true
		}
		if skipModifiers && (k == token.KwPublic || k == token.KwPrivate || k == token.KwDefault) {
			return true
		}
		sp, kind, found = relSpan{start, end}, k, true
		return false
	})
	return sp, kind, found
}

// closerOf reads the closer family from "End X", "Next", "Loop" or "Wend".
func closerOf(g *syntax.GreenNode, off uint32) (family, string) {
	var words []token.Kind
	eachToken(g, off, func(k token.Kind, _, _ uint32) bool {
		if !k.IsTrivia() {
			words = append(words, k)
		}
		return len(words) < 2
	})
	if len(words) == 0 {
		return famNone, ""
	}
	var fam family
	switch words[0] {
	case token.KwEnd:
		if len(words) == 2 {
			fam = familyOfEnd(words[1])
		}
	case token.KwNext:
		fam = famFor
	case token.KwLoop:
		fam = famDo
	case token.KwWend:
		fam = famWhile
	}
	return fam, familyCloser[fam]
}

// eachToken visits the tokens of g in order until fn returns false.
func eachToken(g *syntax.GreenNode, off uint32, fn func(k token.Kind, start, end uint32) bool) (uint32, bool) {
	for _, c := range g.Children() {
		if c.Node != nil {
			var more bool
			if off, more = eachToken(c.Node, off, fn); !more {
				return off, false
			}
			continue
		}
		end := off + c.Token.Width
		if !fn(c.Token.Kind, off, end) {
			return end, false
		}
		off = end
	}
	return off, true
}
