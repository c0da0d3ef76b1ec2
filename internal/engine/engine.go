// Package engine assembles the lexicon, rule group, user dictionary, script
// rules and result cache behind the operations the CLI and servers use.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lukasmwerner/harper/internal/cache"
	"github.com/lukasmwerner/harper/internal/script"
	"github.com/lukasmwerner/harper/internal/store"
	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/harper"
	"github.com/lukasmwerner/harper/pkg/lexicon"
	"github.com/lukasmwerner/harper/pkg/lint"
)

// ErrNoDictionary is returned by dictionary operations when no store is
// configured.
var ErrNoDictionary = errors.New("no user dictionary configured")

// Config holds engine configuration.
type Config struct {
	// Dialect selects spelling conventions
	Dialect dialect.Dialect
	// Lint holds disabled rules, severity overrides, options, dedup and parallelism
	Lint core.LintConfig
	// DictionaryPath is the SQLite user dictionary (empty disables it)
	DictionaryPath string
	// Dictionary overrides DictionaryPath with an open store (tests)
	Dictionary store.Dictionary
	// ScriptsDir holds *.star rules (optional)
	ScriptsDir string
	// CacheDir enables the result cache when non-empty
	CacheDir string
	// FileParallelism bounds concurrent files in LintPaths
	FileParallelism int
	// Extensions filters files found while walking directories
	Extensions []string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result is the outcome of linting one text.
type Result struct {
	Path   string      `json:"path,omitempty" yaml:"path,omitempty"`
	Text   string      `json:"text" yaml:"text"`
	Tokens int         `json:"tokens" yaml:"tokens"`
	Lints  []lint.Lint `json:"lints" yaml:"lints"`
	Cached bool        `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// Engine lints text with the configured rule set.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	dict      store.Dictionary
	ownsDict  bool
	cache     *cache.Cache
	scripts   []*script.Rule
	lintCfg   *lint.Config
	overrides map[string]bool

	mu          sync.RWMutex
	lexicon     *lexicon.Lexicon
	words       []string // user dictionary words as stored
	group       *lint.Group
	fingerprint string
}

// New builds an engine. The user dictionary is opened and migrated, script
// rules are loaded and the curated group is built for the dialect.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if !cfg.Dialect.IsValid() {
		cfg.Dialect = dialect.Default
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}

	lintCfg, err := lint.ConfigFromCore(&cfg.Lint)
	if err != nil {
		return nil, fmt.Errorf("invalid lint configuration: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		logger:    logger,
		lintCfg:   lintCfg,
		overrides: make(map[string]bool),
		dict:      cfg.Dictionary,
	}

	logger.Debug("initializing engine", "dialect", cfg.Dialect.String(), "dictionary", cfg.DictionaryPath)

	if e.dict == nil && cfg.DictionaryPath != "" {
		s, err := store.Open(ctx, cfg.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open user dictionary: %w", err)
		}
		e.dict = s
		e.ownsDict = true
	}

	if cfg.ScriptsDir != "" {
		rules, err := script.NewLoader(cfg.ScriptsDir, logger).Load()
		if err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("failed to load script rules: %w", err)
		}
		e.scripts = rules
		logger.Debug("loaded script rules", "count", len(rules))
	}

	if cfg.CacheDir != "" {
		c, err := cache.Open(cfg.CacheDir)
		if err != nil {
			_ = e.Close()
			return nil, err
		}
		e.cache = c
	}

	if err := e.rebuild(ctx); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the user dictionary if the engine opened it.
func (e *Engine) Close() error {
	if e.ownsDict && e.dict != nil {
		return e.dict.Close()
	}
	return nil
}

// Dialect returns the configured dialect.
func (e *Engine) Dialect() dialect.Dialect {
	return e.cfg.Dialect
}

// Group returns the current rule group.
func (e *Engine) Group() *lint.Group {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.group
}

// rebuild recreates the lexicon and group, e.g. after the dictionary changed.
func (e *Engine) rebuild(ctx context.Context) error {
	lex := lexicon.Curated()
	var userWords []string
	if e.dict != nil {
		words, err := e.dict.Words(ctx)
		if err != nil {
			return fmt.Errorf("failed to read user dictionary: %w", err)
		}
		userWords = words
		lex = lex.With(words...)
	}

	group, err := lint.NewCurated(e.cfg.Dialect, lex, e.lintCfg, lint.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("failed to build rule group: %w", err)
	}
	for _, r := range e.scripts {
		rule, err := r.WithOptions(e.lintCfg.GetRuleOptions(r.Name()))
		if err != nil {
			return err
		}
		rule = rule.WithSeverity(e.lintCfg.GetSeverity(r.Name(), r.DefaultSeverity()))
		if err := group.Add(rule); err != nil {
			return fmt.Errorf("script rule %s: %w", r.Name(), err)
		}
		if e.lintCfg.IsDisabled(r.Name()) {
			group.SetEnabled(r.Name(), false)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for name, on := range e.overrides {
		group.SetEnabled(name, on)
	}
	e.lexicon = lex
	e.group = group
	e.words = userWords
	e.fingerprint = e.computeFingerprint(userWords)
	return nil
}

// fingerprintInput is everything besides the text that affects lint output.
type fingerprintInput struct {
	Version   string          `yaml:"version"`
	Dialect   string          `yaml:"dialect"`
	Lint      core.LintConfig `yaml:"lint"`
	Overrides map[string]bool `yaml:"overrides"`
	Words     []string        `yaml:"words"`
	Scripts   []string        `yaml:"scripts"`
}

func (e *Engine) computeFingerprint(words []string) string {
	in := fingerprintInput{
		Version:   harper.Version(),
		Dialect:   e.cfg.Dialect.String(),
		Lint:      e.cfg.Lint,
		Overrides: e.overrides,
		Words:     words,
	}
	for _, r := range e.scripts {
		if data, err := os.ReadFile(r.Path()); err == nil {
			sum := sha256.Sum256(data)
			in.Scripts = append(in.Scripts, r.Name()+":"+hex.EncodeToString(sum[:]))
		}
	}
	data, err := yaml.Marshal(in)
	if err != nil {
		e.logger.Warn("failed to fingerprint configuration", "error", err)
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Fingerprint identifies the configuration used to produce lints.
func (e *Engine) Fingerprint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fingerprint
}

// Rules describes every rule in the group with its enablement.
func (e *Engine) Rules() []core.RuleInfo {
	g := e.Group()
	rules := g.Rules()
	infos := make([]core.RuleInfo, 0, len(rules))
	for _, r := range rules {
		info := lint.GetRuleInfo(r)
		info.Enabled = g.IsEnabled(r.Name())
		infos = append(infos, info)
	}
	return infos
}

// SetEnabled toggles a rule for subsequent lint runs.
func (e *Engine) SetEnabled(name string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.group.SetEnabledStrict(name, enabled); err != nil {
		return err
	}
	e.overrides[name] = enabled
	e.fingerprint = e.computeFingerprint(e.words)
	return nil
}

// LintText lints a single text.
func (e *Engine) LintText(ctx context.Context, text string) (Result, error) {
	e.mu.RLock()
	group, fp := e.group, e.fingerprint
	e.mu.RUnlock()

	doc := document.New(text)
	res := Result{Text: text, Tokens: doc.TokenCount()}

	var key cache.Key
	if e.cache != nil {
		key = cache.NewKey(text, fp)
		lints, ok, err := e.cache.Get(key)
		if err != nil {
			e.logger.Warn("ignoring unreadable cache entry", "key", key.String(), "error", err)
		}
		if ok {
			res.Lints = lints
			res.Cached = true
			return res, nil
		}
	}

	lints, err := group.EvaluateContext(ctx, doc)
	if err != nil {
		return res, err
	}
	res.Lints = lints

	if e.cache != nil {
		if err := e.cache.Put(key, lints); err != nil {
			e.logger.Warn("failed to write cache entry", "error", err)
		}
	}
	return res, nil
}
