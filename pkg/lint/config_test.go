package lint_test

import (
	"testing"

	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := lint.NewConfig()
	assert.True(t, cfg.Dedup)
	assert.Zero(t, cfg.Parallelism)
	assert.False(t, cfg.IsDisabled("Spaces"))
	assert.Equal(t, lint.SeverityHint, cfg.GetSeverity("Spaces", lint.SeverityHint))
	assert.Nil(t, cfg.GetRuleOptions("Spaces"))

	var nilCfg *lint.Config
	assert.False(t, nilCfg.IsDisabled("Spaces"))
	assert.Equal(t, lint.SeverityInfo, nilCfg.GetSeverity("Spaces", lint.SeverityInfo))
	assert.Nil(t, nilCfg.GetRuleOptions("Spaces"))
}

func TestConfig_Mutators(t *testing.T) {
	cfg := lint.NewConfig().
		Disable("Spaces").
		SetSeverity("AnA", lint.SeverityError).
		SetRuleOptions("LongSentences", map[string]any{"max_words": 10})

	assert.True(t, cfg.IsDisabled("Spaces"))
	assert.Equal(t, lint.SeverityError, cfg.GetSeverity("AnA", lint.SeverityWarning))
	assert.Equal(t, map[string]any{"max_words": 10}, cfg.GetRuleOptions("LongSentences"))

	cfg.Enable("Spaces")
	assert.False(t, cfg.IsDisabled("Spaces"))
}

func TestConfigFromCore(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		cfg, err := lint.ConfigFromCore(nil)
		require.NoError(t, err)
		assert.True(t, cfg.Dedup)
	})

	t.Run("full", func(t *testing.T) {
		cfg, err := lint.ConfigFromCore(&core.LintConfig{
			Disabled:    []string{"SpellCheck"},
			Severity:    map[string]string{"Spaces": "warn", "AnA": "Error"},
			Rules:       map[string]core.RuleOptions{"LongSentences": {"max_words": 12}},
			Dedup:       false,
			Parallelism: 4,
		})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("SpellCheck"))
		assert.Equal(t, lint.SeverityWarning, cfg.GetSeverity("Spaces", lint.SeverityHint))
		assert.Equal(t, lint.SeverityError, cfg.GetSeverity("AnA", lint.SeverityHint))
		assert.Equal(t, 12, cfg.GetRuleOptions("LongSentences")["max_words"])
		assert.False(t, cfg.Dedup)
		assert.Equal(t, 4, cfg.Parallelism)
	})

	t.Run("bad severity", func(t *testing.T) {
		_, err := lint.ConfigFromCore(&core.LintConfig{
			Severity: map[string]string{"Spaces": "critical"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "critical")
	})
}
