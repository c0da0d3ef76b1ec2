package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

func TestNewKey(t *testing.T) {
	a := NewKey("text", "australian")
	assert.Equal(t, a, NewKey("text", "australian"))
	assert.NotEqual(t, a, NewKey("text", "american"))
	assert.NotEqual(t, a, NewKey("text2", "australian"))
	// The separator keeps fingerprint and text from running together.
	assert.NotEqual(t, NewKey("bc", "a"), NewKey("c", "ab"))
	assert.Len(t, a.String(), 64)
}

func TestCache_PutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	lints := []lint.Lint{
		{Rule: "Spaces", Severity: lint.SeverityWarning, Message: "m", Span: token.NewSpan(5, 7), Suggestions: []string{" "}},
		{Rule: "LongSentences", Severity: lint.SeverityHint, Message: "long", Span: token.NewSpan(0, 40)},
	}
	key := NewKey("Hello  world", "fp")

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, c.Put(key, lints))

	got, ok, err = c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, lints[0], got[0])
	assert.Equal(t, "LongSentences", got[1].Rule)
	assert.Equal(t, lint.SeverityHint, got[1].Severity)
	assert.Empty(t, got[1].Suggestions)
}

func TestCache_EmptyResult(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := NewKey("", "fp")

	require.NoError(t, c.Put(key, nil))
	got, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_SchemaMismatch(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := NewKey("x", "fp")

	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	data, err := msgpack.Marshal(payload{Schema: schemaVersion + 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, data, 0o600))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Corrupt(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := NewKey("x", "fp")

	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte{0xc1}, 0o600))

	_, ok, err := c.Get(key)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := NewKey("x", "fp")
	require.NoError(t, c.Put(key, []lint.Lint{{Rule: "R"}}))

	require.NoError(t, c.Clear())
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "harper"), dir)
}

func TestNilCache(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(Key{}, nil))
	_, ok, err := c.Get(Key{})
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Clear())
}
