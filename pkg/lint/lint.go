package lint

import (
	"sort"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/token"
)

// Severity is re-exported from core so rule packages only import lint.
type Severity = core.Severity

// Severity levels.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// Lint is a single finding. It holds no reference to the document or rule
// that produced it and stays valid after both are gone.
type Lint struct {
	Rule        string     `json:"rule" yaml:"rule"`
	Severity    Severity   `json:"severity" yaml:"severity"`
	Message     string     `json:"message" yaml:"message"`
	Span        token.Span `json:"span" yaml:"span"`
	Suggestions []string   `json:"suggestions" yaml:"suggestions"`
}

// HasSuggestions reports whether the lint proposes at least one replacement.
func (l Lint) HasSuggestions() bool {
	return len(l.Suggestions) > 0
}

// Clone returns a deep copy of the lint.
func (l Lint) Clone() Lint {
	out := l
	if l.Suggestions != nil {
		out.Suggestions = append([]string(nil), l.Suggestions...)
	}
	return out
}

// Validate checks that the lint's span fits a document of the given length.
func (l Lint) Validate(length int) error {
	if !l.Span.IsValid(length) {
		return &document.SpanError{Span: l.Span, Length: length}
	}
	return nil
}

// SortLints sorts lints by (start, end), keeping the relative order of lints
// with equal spans.
func SortLints(lints []Lint) {
	sort.SliceStable(lints, func(i, j int) bool {
		return lints[i].Span.Less(lints[j].Span)
	})
}

type dedupKey struct {
	span    token.Span
	message string
}

// Dedup removes lints whose (span, message) pair was already reported by a
// different rule. The first rule to report a pair wins and keeps its
// suggestions; repeats from that same rule are kept. Order is preserved.
func Dedup(lints []Lint) []Lint {
	if len(lints) < 2 {
		return lints
	}
	owner := make(map[dedupKey]string, len(lints))
	out := lints[:0:0]
	for _, l := range lints {
		key := dedupKey{span: l.Span, message: l.Message}
		if rule, ok := owner[key]; ok && rule != l.Rule {
			continue
		}
		owner[key] = l.Rule
		out = append(out, l)
	}
	return out
}
