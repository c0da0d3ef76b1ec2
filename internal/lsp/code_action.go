package lsp

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/lukasmwerner/harper/pkg/lint"
)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions returns a quick fix for every suggestion of every lint
// overlapping the requested range.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}

	if len(params.Context.Only) > 0 && !slices.Contains(params.Context.Only, CodeActionKindQuickFix) {
		return actions
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return actions
	}

	want := doc.RangeToSpan(params.Range)
	for _, l := range doc.Lints() {
		if !l.HasSuggestions() || !touches(l, want.Start, want.End) {
			continue
		}
		diag := lintToDiagnostic(doc, l)
		current := doc.GetTextInRange(diag.Range)
		for _, suggestion := range l.Suggestions {
			if suggestion == current {
				continue
			}
			actions = append(actions, CodeAction{
				Title:       actionTitle(current, suggestion),
				Kind:        CodeActionKindQuickFix,
				Diagnostics: []Diagnostic{diag},
				IsPreferred: len(l.Suggestions) == 1, // Single fix is preferred
				Edit: &WorkspaceEdit{
					Changes: map[string][]TextEdit{
						doc.URI: {{Range: diag.Range, NewText: suggestion}},
					},
				},
			})
		}
	}

	return actions
}

// touches reports whether a lint overlaps [start, end). An empty range
// (a cursor) touches lints it sits inside or at the edge of.
func touches(l lint.Lint, start, end int) bool {
	if start == end {
		return l.Span.Start <= start && start <= l.Span.End
	}
	return l.Span.Start < end && start < l.Span.End
}

func actionTitle(current, suggestion string) string {
	if suggestion == "" {
		return fmt.Sprintf("Remove %s", strconv.Quote(current))
	}
	return fmt.Sprintf("Replace with %s", strconv.Quote(suggestion))
}
