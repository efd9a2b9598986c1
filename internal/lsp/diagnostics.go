package lsp

import (
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"aspkit/internal/diag"
	"aspkit/internal/document"
	"aspkit/internal/trace"
)

func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		delete(s.timers, uri)
		s.mu.Unlock()
		s.publish(uri)
	})
}

// publish sends the diagnostics of the current snapshot of uri.
func (s *Server) publish(uri string) {
	doc, ok := s.store.Get(uri)
	if !ok {
		return
	}
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify == nil {
		return
	}
	snap := doc.Snapshot()
	sp := trace.Begin(s.tracer, trace.ScopePass, "lsp_publish", 0)
	params := s.diagnosticsParams(uri, snap)
	sp.End(uri)
	notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func (s *Server) diagnosticsParams(uri string, snap *document.Snapshot) protocol.PublishDiagnosticsParams {
	ds := snap.Diagnostics()
	if len(ds) > s.maxDiagnostics {
		ds = ds[:s.maxDiagnostics]
	}
	lines := newLineMap(snap.File())
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		sev := severity(d.Severity)
		src := serverName
		pd := protocol.Diagnostic{
			Range:    lines.rangeOf(d.Primary),
			Severity: &sev,
			Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
			Source:   &src,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: uri, Range: lines.rangeOf(n.Span)},
				Message:  n.Msg,
			})
		}
		out = append(out, pd)
	}
	v := protocol.UInteger(max(snap.Version, 0))
	return protocol.PublishDiagnosticsParams{URI: uri, Version: &v, Diagnostics: out}
}

func severity(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
