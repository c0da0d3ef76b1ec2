package script

import (
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"go.starlark.net/starlark"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

// Rule is a lint rule backed by a Starlark check function. It implements
// lint.Rule. The check function is frozen after loading, so a Rule may be
// evaluated from several goroutines.
type Rule struct {
	name        string
	description string
	severity    core.Severity
	path        string
	check       starlark.Callable
	options     starlark.Value
	pool        *ThreadPool
	logger      *slog.Logger
}

var _ lint.Rule = (*Rule)(nil)

func (r *Rule) Name() string                   { return r.name }
func (r *Rule) Description() string            { return r.description }
func (r *Rule) DefaultSeverity() core.Severity { return r.severity }
func (r *Rule) ConfigKeys() []string           { return nil }

// Source marks the rule as script-defined in rule listings.
func (r *Rule) Source() string { return core.SourceScript }

// Path returns the file the rule was loaded from.
func (r *Rule) Path() string { return r.path }

// WithSeverity returns a copy of the rule with another severity.
func (r *Rule) WithSeverity(s core.Severity) *Rule {
	cp := *r
	cp.severity = s
	return &cp
}

// WithOptions returns a copy of the rule that sees opts as doc.options.
func (r *Rule) WithOptions(opts map[string]any) (*Rule, error) {
	v, err := OptionsValue(opts)
	if err != nil {
		return nil, fmt.Errorf("rule %s: invalid options: %w", r.name, err)
	}
	cp := *r
	cp.options = v
	return &cp, nil
}

// scriptLint is the shape of one element of check()'s result.
type scriptLint struct {
	Start       int      `mapstructure:"start"`
	End         int      `mapstructure:"end"`
	Message     string   `mapstructure:"message"`
	Suggestions []string `mapstructure:"suggestions"`
}

// Evaluate runs check(doc). Script errors and malformed results produce no
// lints.
func (r *Rule) Evaluate(doc *document.Document) []lint.Lint {
	lints, err := r.Run(doc)
	if err != nil {
		r.logger.Warn("script rule failed", "rule", r.name, "error", err)
		return nil
	}
	return lints
}

// Run is Evaluate with the error exposed.
func (r *Rule) Run(doc *document.Document) ([]lint.Lint, error) {
	if doc == nil {
		return nil, nil
	}
	thread := r.pool.Get(r.name)
	defer r.pool.Put(thread)

	result, err := starlark.Call(thread, r.check, starlark.Tuple{DocumentValue(doc, r.options)}, nil)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}
	if result == starlark.None {
		return nil, nil
	}
	raw, err := ToGo(result)
	if err != nil {
		return nil, fmt.Errorf("invalid result: %w", err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("check must return a list, got %s", result.Type())
	}

	lints := make([]lint.Lint, 0, len(items))
	for i, item := range items {
		var sl scriptLint
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &sl,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(item); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		if sl.Message == "" {
			return nil, fmt.Errorf("result %d: missing message", i)
		}
		l := lint.Lint{
			Rule:        r.name,
			Severity:    r.severity,
			Message:     sl.Message,
			Span:        token.NewSpan(sl.Start, sl.End),
			Suggestions: sl.Suggestions,
		}
		if err := l.Validate(doc.Len()); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		lints = append(lints, l)
	}
	lint.SortLints(lints)
	return lints, nil
}
