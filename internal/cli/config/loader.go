package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/lukasmwerner/harper/pkg/lint"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// configNames are the file names searched for, in order.
var configNames = []string{"harper.yaml", "harper.yml"}

// flagKeys maps flags whose names differ from their config keys.
var flagKeys = map[string]string{
	"cache":       "cache.enabled",
	"cache-dir":   "cache.dir",
	"addr":        "server.addr",
	"debounce":    "watch.debounce",
	"disable":     "lint.disabled",
	"parallelism": "lint.parallelism",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// configExistsIn returns the config file in dir, if any.
func configExistsIn(dir string) string {
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a harper config file.
func findConfigUpward(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if p := configExistsIn(dir); p != "" {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || path == ":memory:" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// defaults returns the lowest-priority configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"dialect":          DefaultDialect,
		"output":           DefaultOutput,
		"verbose":          false,
		"dictionary":       DefaultDictionary,
		"scripts_dir":      DefaultScriptsDir,
		"cache.enabled":    false,
		"cache.dir":        "",
		"lint.dedup":       true,
		"lint.parallelism": 0,
		"server.addr":      DefaultServerAddr,
		"watch.debounce":   DefaultDebounce.String(),
	}
}

// envKey maps HARPER_LINT__DEDUP to lint.dedup: a double underscore
// separates nesting levels.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "HARPER_"))
	return strings.ReplaceAll(key, "__", ".")
}

// flagKey maps a changed flag to its config key.
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, or the nearest harper.yaml upward from CWD
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		cwd = "."
	}
	projectRoot := cwd
	configFileUsed = cfgFile
	if configFileUsed == "" {
		configFileUsed = findConfigUpward(cwd)
	}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Environment variables (HARPER_ prefix)
	if err := k.Load(env.Provider("HARPER_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (only those explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve paths. Flags are relative to CWD, everything else to the
	// project root.
	cfg.ProjectRoot = projectRoot
	cfg.Dictionary = resolveConfigPath(flags, "dictionary", cfg.Dictionary, cwd, projectRoot)
	cfg.ScriptsDir = resolveConfigPath(flags, "scripts-dir", cfg.ScriptsDir, cwd, projectRoot)
	cfg.Cache.Dir = resolveConfigPath(flags, "cache-dir", cfg.Cache.Dir, cwd, projectRoot)

	canonicalizeRuleNames(&cfg.Lint)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(flags *pflag.FlagSet, flag, value, cwd, projectRoot string) string {
	if flags != nil && flags.Lookup(flag) != nil && flags.Changed(flag) {
		return resolvePathRelativeTo(value, cwd)
	}
	return resolvePathRelativeTo(value, projectRoot)
}

// canonicalizeRuleNames fixes the case of rule names, which environment
// variables lower-case. Unknown names (script rules) are left alone.
func canonicalizeRuleNames(c *LintConfig) {
	known := make(map[string]string)
	for _, def := range lint.GetAll() {
		known[strings.ToLower(def.Name)] = def.Name
	}
	canon := func(name string) string {
		if n, ok := known[strings.ToLower(name)]; ok {
			return n
		}
		return name
	}

	for i, name := range c.Disabled {
		c.Disabled[i] = canon(name)
	}
	if len(c.Severity) > 0 {
		sev := make(map[string]string, len(c.Severity))
		for name, s := range c.Severity {
			sev[canon(name)] = s
		}
		c.Severity = sev
	}
	if len(c.Rules) > 0 {
		rules := make(map[string]RuleOptions, len(c.Rules))
		for name, opts := range c.Rules {
			rules[canon(name)] = opts
		}
		c.Rules = rules
	}
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// DictionaryIfExists returns the dictionary path when the database file
// exists, so read-only commands do not create one.
func (c *Config) DictionaryIfExists() string {
	if c.Dictionary == "" || c.Dictionary == ":memory:" {
		return c.Dictionary
	}
	if _, err := os.Stat(c.Dictionary); err != nil {
		return ""
	}
	return c.Dictionary
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config stored by WithConfig, falling back to
// the built-in defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok && c != nil {
			return c
		}
	}
	return Default()
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Dialect:      DefaultDialect,
		OutputFormat: DefaultOutput,
		Dictionary:   DefaultDictionary,
		ScriptsDir:   DefaultScriptsDir,
		Lint:         LintConfig{Dedup: true},
		Server:       ServerConfig{Addr: DefaultServerAddr},
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}
