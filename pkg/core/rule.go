package core

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	DefaultSeverity Severity `json:"default_severity" yaml:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Source          string   `json:"source" yaml:"source"` // "builtin" or "script"
	Enabled         bool     `json:"enabled" yaml:"enabled"`

	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty" yaml:"good_example,omitempty"`
}

// Rule sources.
const (
	SourceBuiltin = "builtin"
	SourceScript  = "script"
)
