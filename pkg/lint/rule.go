package lint

import (
	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lexicon"
)

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the interface all lint rules implement.
type Rule interface {
	// Name returns the stable identity used for enable/disable, e.g. "RepeatedWords".
	Name() string

	// Description returns a human-readable description.
	Description() string

	// DefaultSeverity returns the severity attached to this rule's lints.
	DefaultSeverity() Severity

	// ConfigKeys returns configuration keys this rule accepts.
	ConfigKeys() []string

	// Evaluate inspects the document and returns lints in ascending span order.
	// It must not retain or modify the document.
	Evaluate(doc *document.Document) []Lint
}

// Documented is implemented by rules that carry extended documentation.
type Documented interface {
	Rationale() string
	BadExample() string
	GoodExample() string
}

// =============================================================================
// Rule Definitions
// =============================================================================

// Context carries everything a rule definition may consult besides the
// document itself.
type Context struct {
	Dialect dialect.Dialect
	Lexicon *lexicon.Lexicon
	Options map[string]any
}

// CheckFunc analyzes a document and returns lints. Rule and Severity on the
// returned lints are filled in by the wrapper.
type CheckFunc func(doc *document.Document, ctx Context) []Lint

// RuleDef is a data-driven rule definition.
type RuleDef struct {
	Name        string    // Stable identity, e.g. "RepeatedWords"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Rule-specific option keys

	Rationale   string // Why this rule exists
	BadExample  string // Text showing the problem
	GoodExample string // Text showing the fix
}

// Bind produces a Rule from the definition and its evaluation context.
func (d RuleDef) Bind(ctx Context) Rule {
	return &boundRule{def: d, ctx: ctx, severity: d.Severity}
}

// BindWithSeverity is Bind with a severity override.
func (d RuleDef) BindWithSeverity(ctx Context, severity Severity) Rule {
	return &boundRule{def: d, ctx: ctx, severity: severity}
}

type boundRule struct {
	def      RuleDef
	ctx      Context
	severity Severity
}

func (r *boundRule) Name() string              { return r.def.Name }
func (r *boundRule) Description() string       { return r.def.Description }
func (r *boundRule) DefaultSeverity() Severity { return r.severity }
func (r *boundRule) ConfigKeys() []string      { return r.def.ConfigKeys }
func (r *boundRule) Rationale() string         { return r.def.Rationale }
func (r *boundRule) BadExample() string        { return r.def.BadExample }
func (r *boundRule) GoodExample() string       { return r.def.GoodExample }

func (r *boundRule) Evaluate(doc *document.Document) []Lint {
	if r.def.Check == nil || doc == nil {
		return nil
	}
	lints := r.def.Check(doc, r.ctx)
	for i := range lints {
		lints[i].Rule = r.def.Name
		lints[i].Severity = r.severity
	}
	SortLints(lints)
	return lints
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		Name:            r.Name(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Source:          core.SourceBuiltin,
	}
	if d, ok := r.(Documented); ok {
		info.Rationale = d.Rationale()
		info.BadExample = d.BadExample()
		info.GoodExample = d.GoodExample()
	}
	if s, ok := r.(interface{ Source() string }); ok {
		info.Source = s.Source()
	}
	return info
}
