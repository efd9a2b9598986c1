package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"aspkit/internal/syntax"
	"aspkit/internal/token"
)

func (s *Server) documentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}
	return buildSymbols(doc.Snapshot().Tree), nil
}

// buildSymbols lists declarations as a hierarchy: classes hold their
// members, procedures their locals.
func buildSymbols(t *syntax.Tree) []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{}
	collectSymbols(t, newLineMap(t.File()), t.Root(), &out)
	return out
}

func collectSymbols(t *syntax.Tree, lines *lineMap, n syntax.NodeID, out *[]protocol.DocumentSymbol) {
	for _, c := range t.ChildNodes(n) {
		kind, ok := symbolKind(t.Kind(c))
		if !ok {
			collectSymbols(t, lines, c, out)
			continue
		}
		name, detail, found := declName(t, c)
		if !found {
			// заголовок не разобран: символы тела всё равно показываем
			collectSymbols(t, lines, c, out)
			continue
		}
		sym := protocol.DocumentSymbol{
			Name:           name.Name(),
			Kind:           kind,
			Range:          lines.rangeOf(t.Range(c)),
			SelectionRange: lines.rangeOf(name.Span),
			Children:       []protocol.DocumentSymbol{},
		}
		if detail != "" {
			sym.Detail = &detail
		}
		if kind == protocol.SymbolKindFunction && inClass(t, c) {
			sym.Kind = protocol.SymbolKindMethod
		}
		collectSymbols(t, lines, c, &sym.Children)
		*out = append(*out, sym)
	}
}

func symbolKind(k syntax.NodeKind) (protocol.SymbolKind, bool) {
	switch k {
	case syntax.ClassDeclaration:
		return protocol.SymbolKindClass, true
	case syntax.SubDeclaration, syntax.FunctionDeclaration:
		return protocol.SymbolKindFunction, true
	case syntax.PropertyDeclaration:
		return protocol.SymbolKindProperty, true
	case syntax.ConstDeclarator:
		return protocol.SymbolKindConstant, true
	case syntax.VariableDeclarator:
		return protocol.SymbolKindVariable, true
	}
	return 0, false
}

// declName finds the declared name among the direct tokens of n: the
// identifier after the introducing keyword (and the Get/Let/Set of a
// property). Declarators start with the name.
func declName(t *syntax.Tree, n syntax.NodeID) (token.Token, string, bool) {
	toks := t.ChildTokens(n)
	var detail []string
	i := 0
	if kw, ok := declKeyword[t.Kind(n)]; ok {
		for i < len(toks) && (toks[i].Kind == token.KwPublic || toks[i].Kind == token.KwPrivate || toks[i].Kind == token.KwDefault) {
			detail = append(detail, toks[i].Text)
			i++
		}
		if i >= len(toks) || toks[i].Kind != kw {
			return token.Token{}, "", false
		}
		i++
		if kw == token.KwProperty && i < len(toks) && toks[i].Kind != token.Ident {
			detail = append(detail, toks[i].Text)
			i++
		}
	}
	if i >= len(toks) || toks[i].Kind != token.Ident {
		return token.Token{}, "", false
	}
	return toks[i], strings.Join(detail, " "), true
}

var declKeyword = map[syntax.NodeKind]token.Kind{
	syntax.SubDeclaration:      token.KwSub,
	syntax.FunctionDeclaration: token.KwFunction,
	syntax.PropertyDeclaration: token.KwProperty,
	syntax.ClassDeclaration:    token.KwClass,
}

func inClass(t *syntax.Tree, n syntax.NodeID) bool {
	_, ok := t.Ancestor(n, syntax.ClassDeclaration)
	return ok
}
