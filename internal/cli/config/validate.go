package config

import (
	"fmt"
	"slices"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks dialect, output and severity names.
func (c *Config) Validate() error {
	if _, err := dialect.Parse(c.Dialect); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid configuration: unknown output format %q (expected one of %v)", c.OutputFormat, OutputFormats)
	}
	for rule, s := range c.Lint.Severity {
		if _, ok := core.ParseSeverity(s); !ok {
			return fmt.Errorf("invalid configuration: rule %s: unknown severity %q", rule, s)
		}
	}
	if c.Lint.Parallelism < 0 {
		return fmt.Errorf("invalid configuration: lint.parallelism must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("invalid configuration: watch.debounce must not be negative")
	}
	return nil
}

// DialectValue returns the parsed dialect. Call after Validate.
func (c *Config) DialectValue() dialect.Dialect {
	d, err := dialect.Parse(c.Dialect)
	if err != nil {
		return dialect.Default
	}
	return d
}
