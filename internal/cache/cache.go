// Package cache stores lint results on disk keyed by a digest of the text
// and the configuration that produced them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

// schemaVersion is bumped whenever the payload layout changes.
const schemaVersion uint16 = 1

// Key identifies a cached result.
type Key [sha256.Size]byte

// NewKey digests the text together with a configuration fingerprint.
func NewKey(text, fingerprint string) Key {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(text))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Cache is a directory of msgpack encoded lint results.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type payload struct {
	Schema uint16       `msgpack:"schema"`
	Lints  []cachedLint `msgpack:"lints"`
}

type cachedLint struct {
	Rule        string   `msgpack:"rule"`
	Severity    int      `msgpack:"severity"`
	Message     string   `msgpack:"message"`
	Start       int      `msgpack:"start"`
	End         int      `msgpack:"end"`
	Suggestions []string `msgpack:"suggestions"`
}

// DefaultDir returns $XDG_CACHE_HOME/harper, falling back to ~/.cache/harper.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "harper"), nil
}

// Open creates the cache directory if needed. An empty dir uses DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	s := key.String()
	return filepath.Join(c.dir, s[:2], s+".mp")
}

// Put stores lints under key. The file is written to a temporary name and
// renamed into place.
func (c *Cache) Put(key Key, lints []lint.Lint) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(toPayload(lints)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Get loads the lints stored under key. A missing entry or an entry written
// by another schema version reports false.
func (c *Cache) Get(key Key) ([]lint.Lint, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open cache entry: %w", err)
	}
	defer func() { _ = f.Close() }()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	if p.Schema != schemaVersion {
		return nil, false, nil
	}
	return fromPayload(p), true, nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return nil
}

func toPayload(lints []lint.Lint) payload {
	p := payload{Schema: schemaVersion, Lints: make([]cachedLint, len(lints))}
	for i, l := range lints {
		p.Lints[i] = cachedLint{
			Rule:        l.Rule,
			Severity:    int(l.Severity),
			Message:     l.Message,
			Start:       l.Span.Start,
			End:         l.Span.End,
			Suggestions: l.Suggestions,
		}
	}
	return p
}

func fromPayload(p payload) []lint.Lint {
	lints := make([]lint.Lint, len(p.Lints))
	for i, c := range p.Lints {
		lints[i] = lint.Lint{
			Rule:        c.Rule,
			Severity:    lint.Severity(c.Severity),
			Message:     c.Message,
			Span:        token.NewSpan(c.Start, c.End),
			Suggestions: c.Suggestions,
		}
	}
	return lints
}
