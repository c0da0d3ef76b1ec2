package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukasmwerner/harper/pkg/lexicon"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore implements Dictionary using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// NewWithDB wraps an existing connection. The schema is assumed to exist.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens (creating if needed) the database at path and migrates it.
// Use ":memory:" for an in-memory database.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	s := NewSQLiteStore()
	if err := s.Open(ctx, path); err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Open opens a connection to the SQLite database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Path returns the database path given to Open.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func normalizeWord(word string) (string, error) {
	w := lexicon.Normalize(strings.TrimSpace(word))
	if w == "" {
		return "", ErrEmptyWord
	}
	return w, nil
}

// AddWord stores a word. Adding an existing word is a no-op.
func (s *SQLiteStore) AddWord(ctx context.Context, word, source string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	w, err := normalizeWord(word)
	if err != nil {
		return err
	}
	if source == "" {
		source = SourceUser
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO dictionary (word, source) VALUES (?, ?) ON CONFLICT(word) DO NOTHING`,
		w, source,
	)
	if err != nil {
		return fmt.Errorf("failed to add word %q: %w", w, err)
	}
	return nil
}

// RemoveWord deletes a word. Removing an unknown word returns ErrNotFound.
func (s *SQLiteStore) RemoveWord(ctx context.Context, word string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	w, err := normalizeWord(word)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM dictionary WHERE word = ?`, w)
	if err != nil {
		return fmt.Errorf("failed to remove word %q: %w", w, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove word %q: %w", w, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, w)
	}
	return nil
}

// HasWord reports whether a word is stored.
func (s *SQLiteStore) HasWord(ctx context.Context, word string) (bool, error) {
	if s.db == nil {
		return false, ErrNotOpen
	}
	w, err := normalizeWord(word)
	if err != nil {
		return false, err
	}
	var one int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM dictionary WHERE word = ?`, w).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up word %q: %w", w, err)
	}
	return true, nil
}

// Words returns all stored words in alphabetical order.
func (s *SQLiteStore) Words(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, nil
}

// Entries returns all stored words with their metadata.
func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	rows, err := s.db.QueryContext(ctx, `SELECT word, source, added_at FROM dictionary ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Word, &e.Source, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return entries, nil
}
