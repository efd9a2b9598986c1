package lsp

import (
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// регистрирует бэкенд commonlog
	_ "github.com/tliron/commonlog/simple"

	"aspkit/internal/document"
	"aspkit/internal/parser"
	"aspkit/internal/trace"
	"aspkit/internal/version"
)

const serverName = "aspkit"

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Debounce delays publishing diagnostics after a change.
	Debounce time.Duration
	// MaxDiagnostics caps published diagnostics per document (0 = 100).
	MaxDiagnostics int
	Parser         parser.Options
	Tracer         trace.Tracer
}

// Server serves one editor session over glsp.
type Server struct {
	handler protocol.Handler
	srv     *server.Server
	store   *document.Store
	log     commonlog.Logger
	tracer  trace.Tracer

	mu             sync.Mutex
	notify         glsp.NotifyFunc
	timers         map[string]*time.Timer
	debounce       time.Duration
	maxDiagnostics int
}

// NewServer constructs a new LSP server.
func NewServer(opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	popts := opts.Parser
	if popts.Tracer == nil {
		popts.Tracer = opts.Tracer
	}
	s := &Server{
		store:          document.NewStore(popts),
		log:            commonlog.GetLogger(serverName + ".lsp"),
		tracer:         opts.Tracer,
		timers:         make(map[string]*time.Timer),
		debounce:       debounce,
		maxDiagnostics: maxDiagnostics,
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.didOpen,
		TextDocumentDidChange:      s.didChange,
		TextDocumentDidClose:       s.didClose,
		TextDocumentFoldingRange:   s.foldingRange,
		TextDocumentDocumentSymbol: s.documentSymbol,
	}
	s.srv = server.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio serves requests on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	return s.srv.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.setNotify(ctx)
	capabilities := s.handler.CreateServerCapabilities()
	change := protocol.TextDocumentSyncKindIncremental
	openClose := true
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}
	if params.ClientInfo != nil {
		s.log.Infof("client %s", params.ClientInfo.Name)
	}
	v := version.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &v,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, _ *protocol.InitializedParams) error {
	s.setNotify(ctx)
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// setNotify keeps the connection's notifier for debounced publishing,
// which runs outside any request.
func (s *Server) setNotify(ctx *glsp.Context) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	s.mu.Lock()
	s.notify = ctx.Notify
	s.mu.Unlock()
}
