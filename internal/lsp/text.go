package lsp

import (
	"errors"
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"aspkit/internal/document"
	"aspkit/internal/incremental"
	"aspkit/internal/source"
	"aspkit/internal/trace"
)

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setNotify(ctx)
	item := params.TextDocument
	snap := s.store.Open(item.URI, uriToPath(item.URI), item.Version, item.Text)
	s.log.Debugf("open %s v%d (%d spans)", item.URI, item.Version, len(snap.Tree.Spans()))
	// первый раз публикуем сразу, без задержки
	s.publish(item.URI)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.setNotify(ctx)
	uri := params.TextDocument.URI
	doc, err := s.store.Must(uri)
	if err != nil {
		return err
	}
	ver := params.TextDocument.Version
	for _, change := range params.ContentChanges {
		snap, err := applyChange(doc, ver, change)
		if errors.Is(err, document.ErrStaleVersion) {
			s.log.Warningf("%s: %v", uri, err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", uri, err)
		}
		trace.Point(s.tracer, trace.ScopePass, "lsp_change", snap.Stats.Path.String(), 0)
	}
	s.scheduleDiagnostics(uri)
	return nil
}

// applyChange applies one content change. Ranges are converted against the
// snapshot the change follows.
func applyChange(doc *document.Document, ver protocol.Integer, change any) (*document.Snapshot, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return doc.Replace(ver, c.Text)
		}
		return doc.Apply(ver, editFor(doc.Snapshot().File(), *c.Range, c.Text))
	case protocol.TextDocumentContentChangeEventWhole:
		return doc.Replace(ver, c.Text)
	default:
		return nil, fmt.Errorf("unsupported content change %T", change)
	}
}

func editFor(file *source.File, r protocol.Range, text string) incremental.Edit {
	lines := newLineMap(file)
	start := lines.offset(r.Start)
	end := max(lines.offset(r.End), start)
	return incremental.Edit{Start: start, End: end, Text: text}
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.setNotify(ctx)
	uri := params.TextDocument.URI
	s.mu.Lock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	notify := s.notify
	s.mu.Unlock()

	s.store.Close(uri)
	if notify != nil {
		notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}
