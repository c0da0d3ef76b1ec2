package lint

import (
	"fmt"

	"github.com/lukasmwerner/harper/pkg/core"
)

// Config controls which rules are enabled, their severity and options.
type Config struct {
	// DisabledRules contains rule names to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions holds per-rule options keyed by rule name
	RuleOptions map[string]map[string]any

	// Dedup collapses lints with identical span and message
	Dedup bool

	// Parallelism bounds concurrent rule evaluation; 0 or 1 is sequential
	Parallelism int
}

// NewConfig creates a default configuration with all rules enabled and
// deduplication on.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
		Dedup:             true,
	}
}

// ConfigFromCore converts the file/env level lint configuration.
func ConfigFromCore(c *core.LintConfig) (*Config, error) {
	cfg := NewConfig()
	if c == nil {
		return cfg, nil
	}
	for _, name := range c.Disabled {
		cfg.Disable(name)
	}
	for name, s := range c.Severity {
		sev, ok := core.ParseSeverity(s)
		if !ok {
			return nil, fmt.Errorf("rule %s: unknown severity %q", name, s)
		}
		cfg.SetSeverity(name, sev)
	}
	for name, opts := range c.Rules {
		cfg.SetRuleOptions(name, opts)
	}
	cfg.Dedup = c.Dedup
	cfg.Parallelism = c.Parallelism
	return cfg, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(name string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[name]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(name string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[name]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by name.
func (c *Config) Disable(name string) *Config {
	c.DisabledRules[name] = true
	return c
}

// Enable removes a rule from the disabled set.
func (c *Config) Enable(name string) *Config {
	delete(c.DisabledRules, name)
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(name string, severity Severity) *Config {
	c.SeverityOverrides[name] = severity
	return c
}

// SetRuleOptions replaces the options for a rule.
func (c *Config) SetRuleOptions(name string, opts map[string]any) *Config {
	c.RuleOptions[name] = opts
	return c
}

// GetRuleOptions returns the options for a rule, or nil.
func (c *Config) GetRuleOptions(name string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[name]
}
