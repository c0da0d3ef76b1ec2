package core

// LintConfig holds linting configuration shared by the CLI, the language
// server and the HTTP server.
type LintConfig struct {
	Disabled    []string               `koanf:"disabled" json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Severity    map[string]string      `koanf:"severity" json:"severity,omitempty" yaml:"severity,omitempty"`
	Rules       map[string]RuleOptions `koanf:"rules" json:"rules,omitempty" yaml:"rules,omitempty"`
	Dedup       bool                   `koanf:"dedup" json:"dedup" yaml:"dedup"`
	Parallelism int                    `koanf:"parallelism" json:"parallelism" yaml:"parallelism"`
}

// RuleOptions holds options for a single rule, keyed by option name.
type RuleOptions map[string]any
