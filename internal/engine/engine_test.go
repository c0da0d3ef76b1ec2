package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasmwerner/harper/internal/testutil"
	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := Config{
		Dialect: dialect.Australian,
		Lint:    core.LintConfig{Dedup: true},
		Logger:  testutil.NewTestLogger(t),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func ruleNames(lints []lint.Lint) []string {
	var names []string
	for _, l := range lints {
		names = append(names, l.Rule)
	}
	return names
}

func TestEngine_LintText(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.LintText(context.Background(), "hello,World ! ")
	require.NoError(t, err)
	assert.Equal(t, 6, res.Tokens)
	assert.Equal(t, []string{"SentenceCapitalization", "SpaceAfterPunctuation", "SpaceBeforePunctuation"}, ruleNames(res.Lints))
	assert.False(t, res.Cached)

	res, err = e.LintText(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, res.Lints)
}

func TestEngine_ConfigOverrides(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.Lint.Disabled = []string{"SentenceCapitalization"}
		c.Lint.Severity = map[string]string{"SpaceAfterPunctuation": "error"}
	})

	res, err := e.LintText(context.Background(), "hello,World ! ")
	require.NoError(t, err)
	require.Len(t, res.Lints, 2)
	assert.Equal(t, "SpaceAfterPunctuation", res.Lints[0].Rule)
	assert.Equal(t, lint.SeverityError, res.Lints[0].Severity)
}

func TestEngine_InvalidSeverity(t *testing.T) {
	_, err := New(context.Background(), Config{
		Dialect: dialect.Australian,
		Lint:    core.LintConfig{Severity: map[string]string{"Spaces": "loud"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid lint configuration")
}

func TestEngine_SetEnabled(t *testing.T) {
	e := newTestEngine(t, nil)
	before := e.Fingerprint()

	require.NoError(t, e.SetEnabled("SentenceCapitalization", false))
	assert.NotEqual(t, before, e.Fingerprint())

	res, err := e.LintText(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Empty(t, res.Lints)

	err = e.SetEnabled("Nope", true)
	require.ErrorIs(t, err, lint.ErrUnknownRule)

	for _, info := range e.Rules() {
		if info.Name == "SentenceCapitalization" {
			assert.False(t, info.Enabled)
		}
	}
}

func TestEngine_Rules(t *testing.T) {
	e := newTestEngine(t, nil)
	infos := e.Rules()
	require.Len(t, infos, len(lint.CuratedRules))
	assert.Equal(t, "RepeatedWords", infos[0].Name)
	assert.True(t, infos[0].Enabled)
	assert.Equal(t, core.SourceBuiltin, infos[0].Source)
}

func TestEngine_Dictionary(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, func(c *Config) {
		c.DictionaryPath = filepath.Join(t.TempDir(), "dict.db")
	})

	res, err := e.LintText(ctx, "Kubernetes said")
	require.NoError(t, err)
	assert.Equal(t, []string{"SpellCheck"}, ruleNames(res.Lints))

	require.NoError(t, e.AddWord(ctx, "Kubernetes"))
	res, err = e.LintText(ctx, "Kubernetes said")
	require.NoError(t, err)
	assert.Empty(t, res.Lints)

	entries, err := e.Words(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kubernetes", entries[0].Word)

	n, err := e.ImportWords(ctx, []string{"kubectl", "helm"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, e.RemoveWord(ctx, "kubernetes"))
	res, err = e.LintText(ctx, "Kubernetes said")
	require.NoError(t, err)
	assert.Len(t, res.Lints, 1)
}

func TestEngine_FingerprintStableAcrossRebuild(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, func(c *Config) {
		c.DictionaryPath = filepath.Join(t.TempDir(), "dict.db")
	})
	_, err := e.ImportWords(ctx, []string{"Kubernetes", "kubectl", "helm"})
	require.NoError(t, err)

	require.NoError(t, e.SetEnabled("Spaces", false))
	toggled := e.Fingerprint()
	require.NotEmpty(t, toggled)

	// Rebuilding from the store with the same words and overrides must
	// not invalidate cached results.
	require.NoError(t, e.rebuild(ctx))
	assert.Equal(t, toggled, e.Fingerprint())

	require.NoError(t, e.SetEnabled("Spaces", true))
	assert.NotEqual(t, toggled, e.Fingerprint())
}

func TestEngine_NoDictionary(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()
	assert.ErrorIs(t, e.AddWord(ctx, "x"), ErrNoDictionary)
	assert.ErrorIs(t, e.RemoveWord(ctx, "x"), ErrNoDictionary)
	_, err := e.Words(ctx)
	assert.ErrorIs(t, err, ErrNoDictionary)
	_, err = e.ImportWords(ctx, []string{"x"})
	assert.ErrorIs(t, err, ErrNoDictionary)
}

func TestEngine_Cache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	e := newTestEngine(t, func(c *Config) { c.CacheDir = dir })

	first, err := e.LintText(ctx, "the the cat")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := e.LintText(ctx, "the the cat")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Lints, second.Lints)

	// A configuration change must not reuse stale results.
	require.NoError(t, e.SetEnabled("RepeatedWords", false))
	third, err := e.LintText(ctx, "the the cat")
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestEngine_ScriptRules(t *testing.T) {
	dir := t.TempDir()
	src := `
name = "NoVery"
description = "Flags the word very."
def check(doc):
    return [{"start": t.start, "end": t.end, "message": "Cut very."} for t in doc.tokens if t.text == "very"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "no_very.star"), []byte(src), 0o600))

	e := newTestEngine(t, func(c *Config) {
		c.ScriptsDir = dir
		c.Lint.Severity = map[string]string{"NoVery": "hint"}
	})

	res, err := e.LintText(context.Background(), "The cat is very happy.")
	require.NoError(t, err)
	require.Len(t, res.Lints, 1)
	assert.Equal(t, "NoVery", res.Lints[0].Rule)
	assert.Equal(t, lint.SeverityHint, res.Lints[0].Severity)

	infos := e.Rules()
	last := infos[len(infos)-1]
	assert.Equal(t, "NoVery", last.Name)
	assert.Equal(t, core.SourceScript, last.Source)
}

func TestEngine_ScriptRuleOptions(t *testing.T) {
	dir := t.TempDir()
	src := `
name = "Banned"
def check(doc):
    words = doc.options.get("words", [])
    return [{"start": t.start, "end": t.end, "message": "Avoid " + t.text + "."} for t in doc.tokens if t.text in words]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banned.star"), []byte(src), 0o600))

	e := newTestEngine(t, func(c *Config) {
		c.ScriptsDir = dir
		c.Lint.Rules = map[string]core.RuleOptions{"Banned": {"words": []any{"utilize"}}}
	})

	res, err := e.LintText(context.Background(), "We utilize tools.")
	require.NoError(t, err)
	require.Len(t, res.Lints, 1)
	assert.Equal(t, "Avoid utilize.", res.Lints[0].Message)
}

func TestEngine_ScriptRuleBadOptions(t *testing.T) {
	dir := t.TempDir()
	src := "name = \"Banned\"\ndef check(doc):\n    return []\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banned.star"), []byte(src), 0o600))

	_, err := New(context.Background(), Config{
		Dialect:    dialect.Australian,
		ScriptsDir: dir,
		Lint:       core.LintConfig{Rules: map[string]core.RuleOptions{"Banned": {"words": []int{1}}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule Banned: invalid options")
}

func TestEngine_BadScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.star"), []byte("def check(doc)\n"), 0o600))

	_, err := New(context.Background(), Config{Dialect: dialect.Australian, ScriptsDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load script rules")
}
