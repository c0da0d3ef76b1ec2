// Package store persists the user dictionary in SQLite.
package store

import (
	"context"
	"errors"
	"time"
)

// Errors returned by the store.
var (
	ErrNotOpen   = errors.New("database not opened")
	ErrEmptyWord = errors.New("empty word")
	ErrNotFound  = errors.New("word not found")
)

// Source values recorded with each word.
const (
	SourceUser   = "user"
	SourceImport = "import"
)

// Entry is a dictionary word with its metadata.
type Entry struct {
	Word    string    `json:"word" yaml:"word"`
	Source  string    `json:"source" yaml:"source"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`
}

// Dictionary is the persistence interface used by the engine and the CLI.
type Dictionary interface {
	AddWord(ctx context.Context, word, source string) error
	RemoveWord(ctx context.Context, word string) error
	HasWord(ctx context.Context, word string) (bool, error)
	Words(ctx context.Context) ([]string, error)
	Entries(ctx context.Context) ([]Entry, error)
	Close() error
}
