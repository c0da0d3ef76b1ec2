package lsp

import (
	"context"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/lint"
)

// diagnosticSource is reported as the source of every diagnostic.
const diagnosticSource = "harper"

// publishDiagnostics lints the document and publishes the result.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	res, err := s.linter.LintFileText(ctx, URIToPath(uri), doc.Content)
	if err != nil {
		s.logger.Warn("lint failed", "uri", uri, "error", err)
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeError,
			Message: "harper: " + err.Error(),
		})
		return
	}

	// A newer version may have arrived while linting.
	if !s.documents.SetLints(uri, doc.Version, res.Lints) {
		s.logger.Debug("dropping stale diagnostics", "uri", uri, "version", doc.Version)
		return
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: lintsToDiagnostics(doc, res.Lints),
	})
	s.logger.Debug("published diagnostics", "uri", uri, "count", len(res.Lints), "cached", res.Cached)
}

// clearDiagnostics removes every diagnostic for a document.
func (s *Server) clearDiagnostics(uri string) {
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
}

func lintsToDiagnostics(doc *Document, lints []lint.Lint) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(lints))
	for _, l := range lints {
		diagnostics = append(diagnostics, lintToDiagnostic(doc, l))
	}
	return diagnostics
}

func lintToDiagnostic(doc *Document, l lint.Lint) Diagnostic {
	return Diagnostic{
		Range:    doc.SpanToRange(l.Span),
		Severity: toDiagnosticSeverity(l.Severity),
		Code:     l.Rule,
		Source:   diagnosticSource,
		Message:  l.Message,
	}
}

func toDiagnosticSeverity(sev core.Severity) DiagnosticSeverity {
	switch sev {
	case core.SeverityError:
		return DiagnosticSeverityError
	case core.SeverityWarning:
		return DiagnosticSeverityWarning
	case core.SeverityInfo:
		return DiagnosticSeverityInformation
	default:
		return DiagnosticSeverityHint
	}
}
