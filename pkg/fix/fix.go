// Package fix applies lint suggestions to text.
package fix

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

// ErrNoFixes is returned when none of the lints can be applied.
var ErrNoFixes = errors.New("no applicable fixes")

// DefaultMaxPasses bounds Iterate when no positive limit is given.
const DefaultMaxPasses = 10

// Chooser selects the replacement for a lint. Returning false skips the lint.
type Chooser func(l lint.Lint) (string, bool)

// First picks the first suggestion.
func First(l lint.Lint) (string, bool) {
	if len(l.Suggestions) == 0 {
		return "", false
	}
	return l.Suggestions[0], true
}

// OnlyRules wraps a chooser so that lints from other rules are skipped.
func OnlyRules(choose Chooser, names ...string) Chooser {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	return func(l lint.Lint) (string, bool) {
		if !allowed[l.Rule] {
			return "", false
		}
		return choose(l)
	}
}

// Edit is a replacement applied to the original text.
type Edit struct {
	Rule        string     `json:"rule" yaml:"rule"`
	Span        token.Span `json:"span" yaml:"span"`
	Replacement string     `json:"replacement" yaml:"replacement"`
}

// Result describes the outcome of applying fixes.
type Result struct {
	Text    string      `json:"text" yaml:"text"`
	Applied []Edit      `json:"applied" yaml:"applied"`
	Skipped []lint.Lint `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Passes  int         `json:"passes" yaml:"passes"`
}

// Changed reports whether the text was modified.
func (r Result) Changed() bool {
	return len(r.Applied) > 0
}

// Apply replaces each lint's span with the chosen suggestion. Edits are
// applied in span order; an edit overlapping an earlier one is skipped and
// reported in Result.Skipped. Replacements equal to the text they cover
// are dropped. A nil chooser picks the first suggestion.
func Apply(text string, lints []lint.Lint, choose Chooser) (Result, error) {
	if choose == nil {
		choose = First
	}
	runes := []rune(text)
	res := Result{Text: text, Passes: 1}

	type candidate struct {
		edit Edit
		lint lint.Lint
	}
	var candidates []candidate
	for _, l := range lints {
		replacement, ok := choose(l)
		if !ok {
			continue
		}
		if err := l.Validate(len(runes)); err != nil {
			res.Skipped = append(res.Skipped, l)
			continue
		}
		// A replacement equal to the current text changes nothing.
		if string(runes[l.Span.Start:l.Span.End]) == replacement {
			continue
		}
		candidates = append(candidates, candidate{
			edit: Edit{Rule: l.Rule, Span: l.Span, Replacement: replacement},
			lint: l,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].edit.Span.Less(candidates[j].edit.Span)
	})

	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for _, c := range candidates {
		if c.edit.Span.Start < pos {
			res.Skipped = append(res.Skipped, c.lint)
			continue
		}
		sb.WriteString(string(runes[pos:c.edit.Span.Start]))
		sb.WriteString(c.edit.Replacement)
		pos = c.edit.Span.End
		res.Applied = append(res.Applied, c.edit)
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	sb.WriteString(string(runes[pos:]))
	res.Text = sb.String()
	return res, nil
}

// LintFunc lints text.
type LintFunc func(text string) ([]lint.Lint, error)

// Iterate lints and fixes text repeatedly until no more fixes apply or
// maxPasses is reached. Applied edits accumulate across passes; their spans
// refer to the text of the pass that produced them. Skipped lints are those
// of the final pass.
func Iterate(text string, lintFn LintFunc, choose Chooser, maxPasses int) (Result, error) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	total := Result{Text: text}
	for total.Passes < maxPasses {
		lints, err := lintFn(total.Text)
		if err != nil {
			return total, fmt.Errorf("pass %d: %w", total.Passes+1, err)
		}
		res, err := Apply(total.Text, lints, choose)
		total.Skipped = res.Skipped
		if errors.Is(err, ErrNoFixes) {
			break
		}
		total.Passes++
		total.Text = res.Text
		total.Applied = append(total.Applied, res.Applied...)
	}
	if len(total.Applied) == 0 {
		return total, ErrNoFixes
	}
	return total, nil
}
