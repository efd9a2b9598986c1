package lsp

import (
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"aspkit/internal/document"
	"aspkit/internal/mode"
)

func (s *Server) foldingRange(_ *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return []protocol.FoldingRange{}, nil
	}
	return buildFoldingRanges(doc.Snapshot()), nil
}

// buildFoldingRanges folds matched block pairs (also across script blocks)
// and script blocks spanning several lines.
func buildFoldingRanges(snap *document.Snapshot) []protocol.FoldingRange {
	lines := newLineMap(snap.File())
	region := "region"
	seen := make(map[[2]uint32]bool)
	ranges := make([]protocol.FoldingRange, 0, len(snap.Blocks.Pairs))
	add := func(start, end uint32) {
		sl := lines.position(start).Line
		el := lines.position(end).Line
		if sl >= el || seen[[2]uint32{sl, el}] {
			return
		}
		seen[[2]uint32{sl, el}] = true
		ranges = append(ranges, protocol.FoldingRange{StartLine: sl, EndLine: el, Kind: &region})
	}
	for _, p := range snap.Blocks.Pairs {
		add(p.Range.Start, p.Closer.Start)
	}
	for _, sp := range snap.Tree.Spans() {
		if sp.Kind == mode.Markup || sp.Kind == mode.Script {
			continue
		}
		add(sp.Range.Start, sp.Range.End)
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}
