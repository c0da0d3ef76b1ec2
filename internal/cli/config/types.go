// Package config provides configuration management for the harper CLI.
//
// The lint section reuses core.LintConfig so the CLI, the language server
// and the HTTP server read the same shape.
package config

import (
	"time"

	"github.com/lukasmwerner/harper/pkg/core"
)

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// Default configuration values.
const (
	DefaultDialect    = "australian"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDictionary = ".harper/dictionary.db"
	DefaultScriptsDir = ".harper/rules"
	DefaultServerAddr = "127.0.0.1:8080"
	DefaultDebounce   = 100 * time.Millisecond
	DefaultMaxPasses  = 10
)

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// ServerConfig holds configuration for `harper serve`.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// WatchConfig holds configuration for `harper watch`.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string       `koanf:"dialect"`
	OutputFormat string       `koanf:"output"`
	Verbose      bool         `koanf:"verbose"`
	Dictionary   string       `koanf:"dictionary"`
	ScriptsDir   string       `koanf:"scripts_dir"`
	Cache        CacheConfig  `koanf:"cache"`
	Lint         LintConfig   `koanf:"lint"`
	Server       ServerConfig `koanf:"server"`
	Watch        WatchConfig  `koanf:"watch"`

	// ProjectRoot is the directory relative paths are resolved against
	// (not loaded from config)
	ProjectRoot string `koanf:"-"`
}
