package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lukasmwerner/harper/pkg/document"
	"golang.org/x/sync/errgroup"
)

// Errors returned by Group operations.
var (
	ErrUnknownRule   = errors.New("unknown rule")
	ErrDuplicateRule = errors.New("duplicate rule")
)

// Group is an ordered, named collection of rules evaluated together.
//
// Only the enablement map is guarded; evaluation works on a snapshot of the
// enabled rules so SetEnabled may race with Evaluate without corrupting
// either.
type Group struct {
	mu      sync.RWMutex
	order   []string
	rules   map[string]Rule
	enabled map[string]bool

	dedup       bool
	parallelism int
	logger      *slog.Logger
}

// Option configures a Group.
type Option func(*Group)

// WithDedup sets the deduplication policy. When on, lints from different
// rules with identical span and message collapse into the first rule's lint.
func WithDedup(on bool) Option {
	return func(g *Group) { g.dedup = on }
}

// WithParallelism evaluates up to n rules concurrently. The output is
// identical to sequential evaluation.
func WithParallelism(n int) Option {
	return func(g *Group) { g.parallelism = n }
}

// WithLogger sets the logger used to report failing rules.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Group) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGroup creates an empty group. Deduplication is on by default.
func NewGroup(opts ...Option) *Group {
	g := &Group{
		rules:   make(map[string]Rule),
		enabled: make(map[string]bool),
		dedup:   true,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add appends an enabled rule. Names must be unique within the group.
func (g *Group) Add(r Rule) error {
	name := r.Name()
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.rules[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	g.order = append(g.order, name)
	g.rules[name] = r
	g.enabled[name] = true
	return nil
}

// SetEnabled enables or disables a rule. Unknown names are ignored so that
// configuration written for a larger rule set still applies cleanly.
func (g *Group) SetEnabled(name string, enabled bool) {
	_ = g.SetEnabledStrict(name, enabled)
}

// SetEnabledStrict is SetEnabled that reports unknown names.
func (g *Group) SetEnabledStrict(name string, enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.rules[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	g.enabled[name] = enabled
	return nil
}

// SetAllEnabled enables or disables every rule.
func (g *Group) SetAllEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for name := range g.enabled {
		g.enabled[name] = enabled
	}
}

// IsEnabled reports whether a rule is present and enabled.
func (g *Group) IsEnabled(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled[name]
}

// Has reports whether the group contains a rule.
func (g *Group) Has(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.rules[name]
	return ok
}

// Rule returns a rule by name.
func (g *Group) Rule(name string) (Rule, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rules[name]
	return r, ok
}

// Names returns all rule names in insertion order.
func (g *Group) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.order...)
}

// Rules returns all rules in insertion order.
func (g *Group) Rules() []Rule {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Rule, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.rules[name])
	}
	return out
}

// Len returns the number of rules in the group.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// Dedup reports the group's deduplication policy.
func (g *Group) Dedup() bool {
	return g.dedup
}

// activeRules snapshots the enabled rules in insertion order.
func (g *Group) activeRules() []Rule {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Rule, 0, len(g.order))
	for _, name := range g.order {
		if g.enabled[name] {
			out = append(out, g.rules[name])
		}
	}
	return out
}

// Evaluate runs every enabled rule over doc and returns the merged lints.
func (g *Group) Evaluate(doc *document.Document) []Lint {
	lints, _ := g.EvaluateContext(context.Background(), doc)
	return lints
}

// EvaluateContext is Evaluate with cancellation between rules. A cancelled
// context yields ctx.Err() and no lints.
func (g *Group) EvaluateContext(ctx context.Context, doc *document.Document) ([]Lint, error) {
	if doc == nil {
		return []Lint{}, nil
	}
	active := g.activeRules()
	results := make([][]Lint, len(active))

	if g.parallelism > 1 && len(active) > 1 {
		eg, egctx := errgroup.WithContext(ctx)
		eg.SetLimit(g.parallelism)
		for i, r := range active {
			eg.Go(func() error {
				if err := egctx.Err(); err != nil {
					return err
				}
				results[i] = g.run(r, doc)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, r := range active {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = g.run(r, doc)
		}
	}

	return g.merge(results), nil
}

// merge concatenates per-rule results in rule order, then sorts and
// optionally deduplicates.
func (g *Group) merge(results [][]Lint) []Lint {
	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]Lint, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	SortLints(merged)
	if g.dedup {
		merged = Dedup(merged)
	}
	return merged
}

// run evaluates one rule in isolation. A panic or a lint outside the
// document discards the rule's whole output.
func (g *Group) run(r Rule, doc *document.Document) (lints []Lint) {
	name := r.Name()
	defer func() {
		if rec := recover(); rec != nil {
			g.logger.Warn("rule panicked, discarding its lints", "rule", name, "panic", rec)
			lints = nil
		}
	}()

	out := r.Evaluate(doc)
	length := doc.Len()
	for i := range out {
		if err := out[i].Validate(length); err != nil {
			g.logger.Warn("rule produced an invalid lint, discarding its lints", "rule", name, "error", err)
			return nil
		}
		if out[i].Rule == "" {
			out[i].Rule = name
		}
		out[i] = out[i].Clone()
	}
	return out
}
