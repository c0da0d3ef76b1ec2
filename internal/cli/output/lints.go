package output

import (
	"fmt"
	"strconv"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/lint"
)

// FileReport is the lint outcome for one input.
type FileReport struct {
	Path   string      `json:"path,omitempty" yaml:"path,omitempty"`
	Text   string      `json:"text" yaml:"text"`
	Tokens int         `json:"tokens" yaml:"tokens"`
	Lints  []lint.Lint `json:"lints" yaml:"lints"`
}

// LintSummary totals a set of reports.
type LintSummary struct {
	Files  int            `json:"files" yaml:"files"`
	Lints  int            `json:"lints" yaml:"lints"`
	ByRule map[string]int `json:"by_rule,omitempty" yaml:"by_rule,omitempty"`
}

// LintOutput is the machine-readable form of a lint run.
type LintOutput struct {
	Results []FileReport `json:"results" yaml:"results"`
	Summary LintSummary  `json:"summary" yaml:"summary"`
}

// Summarize totals the reports.
func Summarize(reports []FileReport) LintSummary {
	s := LintSummary{Files: len(reports), ByRule: make(map[string]int)}
	for _, rep := range reports {
		s.Lints += len(rep.Lints)
		for _, l := range rep.Lints {
			s.ByRule[l.Rule]++
		}
	}
	return s
}

// Fragment returns the text covered by the lint's span, or "" if the span
// does not fit the text.
func Fragment(text string, l lint.Lint) string {
	runes := []rune(text)
	if !l.Span.IsValid(len(runes)) {
		return ""
	}
	return string(runes[l.Span.Start:l.Span.End])
}

// Lints renders lint reports in the effective mode. Text mode prints the
// document text (or the file path) and token count before the numbered
// lints.
func (r *Renderer) Lints(reports []FileReport) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(LintOutput{Results: nonNil(reports), Summary: Summarize(reports)})
	case ModeYAML:
		return r.YAML(LintOutput{Results: nonNil(reports), Summary: Summarize(reports)})
	case ModeMarkdown:
		r.lintsMarkdown(reports)
	default:
		r.lintsText(reports)
	}
	return nil
}

func nonNil(reports []FileReport) []FileReport {
	out := make([]FileReport, len(reports))
	for i, rep := range reports {
		if rep.Lints == nil {
			rep.Lints = []lint.Lint{}
		}
		out[i] = rep
	}
	return out
}

func (r *Renderer) lintsText(reports []FileReport) {
	st := r.styles
	for i, rep := range reports {
		if i > 0 {
			r.Println()
		}
		if rep.Path != "" {
			r.Println(st.Path.Render(rep.Path))
		} else {
			r.Printf("Document text: %s\n", strconv.Quote(rep.Text))
		}
		r.Printf("Token count: %d\n", rep.Tokens)
		r.Printf("Lint count: %d\n", len(rep.Lints))
		for n, l := range rep.Lints {
			head := fmt.Sprintf("Lint %d: ", n)
			r.Printf("%s%s %s %s\n",
				st.Bold.Render(head),
				r.Wrap(l.Message, len(head)),
				st.Fragment.Render("["+strconv.Quote(Fragment(rep.Text, l))+"]"),
				st.Muted.Render(l.Rule)+" "+SeverityLabel(r, l.Severity))
			for k, s := range l.Suggestions {
				r.Printf("  %d. %s\n", k+1, strconv.Quote(s))
			}
		}
	}
}

func (r *Renderer) lintsMarkdown(reports []FileReport) {
	for i, rep := range reports {
		if i > 0 {
			r.Println()
		}
		title := rep.Path
		if title == "" {
			title = "Document"
		}
		r.Println(FormatHeader(2, title))
		r.Println(FormatKeyValue("Tokens", strconv.Itoa(rep.Tokens)))
		r.Println(FormatKeyValue("Lints", strconv.Itoa(len(rep.Lints))))
		if len(rep.Lints) == 0 {
			continue
		}
		r.Println()
		for n, l := range rep.Lints {
			r.Printf("%d. **%s** (%s) %s: %s at %s\n",
				n+1, l.Rule, l.Severity, l.Message, strconv.Quote(Fragment(rep.Text, l)), l.Span)
			for _, s := range l.Suggestions {
				r.Printf("   - suggestion: %s\n", strconv.Quote(s))
			}
		}
	}
}

// SeverityLabel renders a severity name styled for text mode.
func SeverityLabel(r *Renderer, s core.Severity) string {
	label := s.String()
	switch s {
	case core.SeverityError:
		return r.styles.Error.Render(label)
	case core.SeverityWarning:
		return r.styles.Warning.Render(label)
	case core.SeverityInfo:
		return r.styles.Info.Render(label)
	default:
		return r.styles.Muted.Render(label)
	}
}

// PlainSummary formats a one-line summary such as "3 lints in 2 files".
func PlainSummary(s LintSummary) string {
	return fmt.Sprintf("%d %s in %d %s",
		s.Lints, plural(s.Lints, "lint", "lints"),
		s.Files, plural(s.Files, "file", "files"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
