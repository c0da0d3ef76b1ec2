package lint_test

import (
	"testing"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptions(t *testing.T) {
	type target struct {
		MaxWords int      `option:"max_words"`
		Ignore   []string `option:"ignore"`
		Strict   bool     `option:"strict"`
	}

	t.Run("typed and weak values", func(t *testing.T) {
		out := target{MaxWords: 40}
		err := lint.DecodeOptions(map[string]any{
			"max_words": "12",
			"ignore":    []any{"foo", "bar"},
			"strict":    "true",
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, target{MaxWords: 12, Ignore: []string{"foo", "bar"}, Strict: true}, out)
	})

	t.Run("empty keeps defaults", func(t *testing.T) {
		out := target{MaxWords: 40}
		require.NoError(t, lint.DecodeOptions(nil, &out))
		assert.Equal(t, 40, out.MaxWords)
	})

	t.Run("unknown key", func(t *testing.T) {
		var out target
		err := lint.DecodeOptions(map[string]any{"colour": "blue"}, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid rule options")
	})

	t.Run("bad value", func(t *testing.T) {
		var out target
		err := lint.DecodeOptions(map[string]any{"max_words": "lots"}, &out)
		require.Error(t, err)
	})
}
