package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const Name = "golean"

// Server tracks open documents and publishes diagnostics for them.
type Server struct {
	version string
	log     commonlog.Logger

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string

	handler protocol.Handler
}

func NewServer(version string) *Server {
	s := &Server{
		version:   version,
		log:       commonlog.GetLogger("golean.lsp"),
		documents: map[protocol.DocumentUri]string{},
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidClose:  s.didClose,
	}
	return s
}

func (s *Server) Handler() *protocol.Handler {
	return &s.handler
}

// Document returns the current text of an open document.
func (s *Server) Document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.documents[uri]
	return text, ok
}

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	s.documents[uri] = params.TextDocument.Text
	s.mu.Unlock()

	s.publish(context, uri, params.TextDocument.Text)
	return nil
}

func (s *Server) didChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	content, ok := s.documents[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}

	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = change.Text

		case protocol.TextDocumentContentChangeEvent:
			startIndex, endIndex := change.Range.IndexesIn(content)
			content = content[:startIndex] + change.Text + content[endIndex:]
		}
	}
	s.documents[uri] = content
	s.mu.Unlock()

	s.publish(context, uri, content)
	return nil
}

func (s *Server) didClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()

	// Clear diagnostics for the closed document.
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) publish(context *glsp.Context, uri protocol.DocumentUri, content string) {
	diags := Check(content)
	s.log.Debugf("%s: %d diagnostics", uri, len(diags))

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}
