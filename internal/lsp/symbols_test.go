package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func symbolsFor(t *testing.T, text string) []protocol.DocumentSymbol {
	t.Helper()
	s := NewServer(ServerOptions{})
	s.store.Open(testURI, "/site/page.asp", 1, text)
	res, err := s.documentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil {
		t.Fatalf("documentSymbol: %v", err)
	}
	syms, ok := res.([]protocol.DocumentSymbol)
	if !ok {
		t.Fatalf("unexpected result %T", res)
	}
	return syms
}

func TestSymbolsHierarchy(t *testing.T) {
	src := strings.Join([]string{
		"<%",
		"Class Cart",
		"  Private items",
		"  Public Property Get Count",
		"  End Property",
		"  Public Function Total(a)",
		"    Dim sum",
		"  End Function",
		"End Class",
		"Const MAX = 5",
		"Sub Main",
		"End Sub",
		"%>",
	}, "\n")
	syms := symbolsFor(t, src)
	if len(syms) != 3 {
		t.Fatalf("expected 3 top-level symbols, got %+v", syms)
	}
	cart, max, main := syms[0], syms[1], syms[2]
	if cart.Name != "Cart" || cart.Kind != protocol.SymbolKindClass {
		t.Fatalf("unexpected class symbol %+v", cart)
	}
	if max.Name != "MAX" || max.Kind != protocol.SymbolKindConstant {
		t.Fatalf("unexpected const symbol %+v", max)
	}
	if main.Name != "Main" || main.Kind != protocol.SymbolKindFunction {
		t.Fatalf("unexpected sub symbol %+v", main)
	}
	if main.Range.Start.Line != 10 || main.Range.End.Line < 11 {
		t.Fatalf("unexpected sub range %+v", main.Range)
	}
	if main.SelectionRange.Start != (protocol.Position{Line: 10, Character: 4}) {
		t.Fatalf("unexpected selection %+v", main.SelectionRange)
	}

	if len(cart.Children) != 3 {
		t.Fatalf("expected 3 members, got %+v", cart.Children)
	}
	items, count, total := cart.Children[0], cart.Children[1], cart.Children[2]
	if items.Name != "items" || items.Kind != protocol.SymbolKindVariable {
		t.Fatalf("unexpected field %+v", items)
	}
	if count.Name != "Count" || count.Kind != protocol.SymbolKindProperty || count.Detail == nil || *count.Detail != "Public Get" {
		t.Fatalf("unexpected property %+v", count)
	}
	if total.Name != "Total" || total.Kind != protocol.SymbolKindMethod {
		t.Fatalf("unexpected method %+v", total)
	}
	if len(total.Children) != 1 || total.Children[0].Name != "sum" {
		t.Fatalf("unexpected locals %+v", total.Children)
	}
}

func TestSymbolsAcrossBlocks(t *testing.T) {
	syms := symbolsFor(t, "<% Sub Show %><p>hi</p><% End Sub %>")
	if len(syms) != 1 || syms[0].Name != "Show" {
		t.Fatalf("unexpected symbols %+v", syms)
	}
}

func TestSymbolsSkipBrokenHeader(t *testing.T) {
	syms := symbolsFor(t, "<% Sub\nDim x\nEnd Sub %>")
	for _, s := range syms {
		if s.Kind == protocol.SymbolKindFunction {
			t.Fatalf("nameless sub reported: %+v", s)
		}
	}
}
