package lint

import (
	"fmt"

	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/lexicon"
)

// CuratedRules lists the curated rule set in evaluation order. The rules
// themselves live in pkg/lint/rules and must be imported for registration.
var CuratedRules = []string{
	"RepeatedWords",
	"Spaces",
	"SpellCheck",
	"SpaceBeforePunctuation",
	"SpaceAfterPunctuation",
	"SentenceCapitalization",
	"CapitalizePersonalPronouns",
	"AnA",
	"LongSentences",
	"EllipsisLength",
	"CorrectNumberSuffix",
	"DialectSpelling",
	"UnclosedQuotes",
}

// NewCurated builds the curated group for a dialect. The configuration
// supplies disabled rules, severity overrides, rule options, the dedup
// policy and parallelism; a nil config uses defaults. Extra options are
// applied after the configuration.
func NewCurated(d dialect.Dialect, lex *lexicon.Lexicon, cfg *Config, opts ...Option) (*Group, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	groupOpts := append([]Option{WithDedup(cfg.Dedup), WithParallelism(cfg.Parallelism)}, opts...)
	g := NewGroup(groupOpts...)

	for _, name := range CuratedRules {
		def, ok := GetByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not registered", ErrUnknownRule, name)
		}
		ctx := Context{
			Dialect: d,
			Lexicon: lex,
			Options: cfg.GetRuleOptions(name),
		}
		if err := g.Add(def.BindWithSeverity(ctx, cfg.GetSeverity(name, def.Severity))); err != nil {
			return nil, err
		}
		if cfg.IsDisabled(name) {
			g.SetEnabled(name, false)
		}
	}
	return g, nil
}
