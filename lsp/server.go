package lsp

import (
	"context"

	"github.com/lex00/nghint/lint"
)

// Config configures the LSP server.
type Config struct {
	// Name is the server name (e.g., "nghint-lsp")
	Name string

	// Docs holds open documents. One is created when nil.
	Docs *Documents

	// Linter provides diagnostics for documents
	Linter DiagnosticProvider

	// Completer provides completion items
	Completer CompletionProvider

	// HoverDocs provides hover documentation
	HoverDocs HoverProvider
}

// Server routes editor requests to the configured providers.
type Server struct {
	config Config
}

// NewServer creates a new LSP server with the given configuration.
func NewServer(config Config) *Server {
	if config.Docs == nil {
		config.Docs = NewDocuments()
	}
	return &Server{
		config: config,
	}
}

// New returns a server whose providers lint with rules and cfg and complete
// and explain directive names.
func New(name string, rules []lint.Rule, cfg *lint.Config) *Server {
	docs := NewDocuments()
	return NewServer(Config{
		Name:      name,
		Docs:      docs,
		Linter:    &Linter{Docs: docs, Rules: rules, Config: cfg},
		Completer: &Completer{Docs: docs},
		HoverDocs: &Explainer{Docs: docs},
	})
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.config.Name
}

// Open records a document's text, as on didOpen or didChange, and returns
// its fresh diagnostics.
func (s *Server) Open(ctx context.Context, uri, text string) ([]Diagnostic, error) {
	s.config.Docs.Open(uri, text)
	return s.Diagnose(ctx, uri)
}

// Close forgets a document, as on didClose.
func (s *Server) Close(uri string) {
	s.config.Docs.Close(uri)
}

// Diagnose runs diagnostics on the specified document.
func (s *Server) Diagnose(ctx context.Context, uri string) ([]Diagnostic, error) {
	if s.config.Linter == nil {
		return []Diagnostic{}, nil
	}
	return s.config.Linter.Diagnose(ctx, uri)
}

// Complete returns completion items at the specified position.
func (s *Server) Complete(ctx context.Context, uri string, pos Position) ([]CompletionItem, error) {
	if s.config.Completer == nil {
		return []CompletionItem{}, nil
	}
	return s.config.Completer.Complete(ctx, uri, pos)
}

// Hover returns hover information at the specified position.
func (s *Server) Hover(ctx context.Context, uri string, pos Position) (*Hover, error) {
	if s.config.HoverDocs == nil {
		return nil, nil
	}
	return s.config.HoverDocs.Hover(ctx, uri, pos)
}
