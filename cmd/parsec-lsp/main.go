// Command parsec-lsp is a minimal language server exposing sexp syntax
// errors as LSP diagnostics: open or edit a document, get back a
// PublishDiagnostics notification pointing at whatever parsec.ParseError
// the grammar reported. This is the one place in the module where a
// context.Context genuinely crosses an external boundary — every request
// glsp hands the server carries one, and it is threaded through exactly as
// far as the LSP protocol requires and no further; nothing inside the
// parsec/sexp call graph itself takes a context, since a parse is a single,
// synchronous, in-process computation with nothing to cancel.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/consensys/go-parsec/pkg/sexp"
	"github.com/consensys/go-parsec/pkg/srcpos"
)

const languageServerName = "parsec-lsp"

var log = logrus.New()

func main() {
	commonlog.Configure(1, nil)

	documents := newDocumentStore()

	handler := protocol.Handler{
		Initialize: func(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
			capabilities := handlerCapabilities()
			return protocol.InitializeResult{
				Capabilities: capabilities,
				ServerInfo:   &protocol.InitializeResultServerInfo{Name: languageServerName},
			}, nil
		},
		Initialized: func(ctx *glsp.Context, params *protocol.InitializedParams) error {
			return nil
		},
		Shutdown: func(ctx *glsp.Context) error {
			return nil
		},
		TextDocumentDidOpen: func(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents.set(params.TextDocument.URI, params.TextDocument.Text)
			publishDiagnostics(context.Background(), ctx, params.TextDocument.URI, documents.get(params.TextDocument.URI))

			return nil
		},
		TextDocumentDidChange: func(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			if len(params.ContentChanges) == 0 {
				return nil
			}

			last := params.ContentChanges[len(params.ContentChanges)-1]
			if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
				documents.set(params.TextDocument.URI, whole.Text)
				publishDiagnostics(context.Background(), ctx, params.TextDocument.URI, whole.Text)
			}

			return nil
		},
		TextDocumentDidClose: func(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			documents.delete(params.TextDocument.URI)
			return nil
		},
	}

	srv := server.NewServer(&handler, languageServerName, false)

	if err := srv.RunStdio(); err != nil {
		log.WithError(err).Error("parsec-lsp exited")
		os.Exit(1)
	}
}

func handlerCapabilities() protocol.ServerCapabilities {
	sync := protocol.TextDocumentSyncKindFull

	return protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &sync,
		},
	}
}

// publishDiagnostics runs the sexp grammar over text and reports the
// single resulting syntax error, if any, as an LSP diagnostic; a clean
// parse clears any previously published diagnostics for uri.
func publishDiagnostics(_ context.Context, ctx *glsp.Context, uri string, text string) {
	_, err := sexp.ParseAll(text)

	diagnostics := []protocol.Diagnostic{}

	if err != nil {
		diagnostics = append(diagnostics, toDiagnostic(text, err))
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toDiagnostic(text string, err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	message := err.Error()

	line, col := 0, 0

	if se, ok := err.(*srcpos.SyntaxError); ok {
		span := se.Span()
		lineInfo := se.FirstEnclosingLine()
		line = lineInfo.Number() - 1
		col = lineInfo.Column(span.Start()) - 1
		message = se.Message()
	}

	pos := protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}

	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   strPtr(languageServerName),
		Message:  message,
	}
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
