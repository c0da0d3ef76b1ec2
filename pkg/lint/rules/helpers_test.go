package rules_test

import (
	"testing"

	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lexicon"
	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/stretchr/testify/assert"
)

// found is the part of a lint the rule tests compare.
type found struct {
	start, end  int
	suggestions []string
}

func evaluate(t *testing.T, def lint.RuleDef, text string, opts map[string]any) []lint.Lint {
	t.Helper()
	ctx := lint.Context{
		Dialect: dialect.Australian,
		Lexicon: lexicon.Curated(),
		Options: opts,
	}
	return def.Bind(ctx).Evaluate(document.New(text))
}

func summarize(lints []lint.Lint) []found {
	var out []found
	for _, l := range lints {
		out = append(out, found{start: l.Span.Start, end: l.Span.End, suggestions: l.Suggestions})
	}
	return out
}

type ruleCase struct {
	name string
	text string
	opts map[string]any
	want []found
}

func runCases(t *testing.T, def lint.RuleDef, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lints := evaluate(t, def, tc.text, tc.opts)
			assert.Equal(t, tc.want, summarize(lints))
			for _, l := range lints {
				assert.Equal(t, def.Name, l.Rule)
				assert.Equal(t, def.Severity, l.Severity)
				assert.NotEmpty(t, l.Message)
			}
		})
	}
}
