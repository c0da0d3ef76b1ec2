package engine

import (
	"context"
	"fmt"

	"github.com/lukasmwerner/harper/internal/store"
)

// AddWord stores a word in the user dictionary and rebuilds the lexicon.
func (e *Engine) AddWord(ctx context.Context, word string) error {
	if e.dict == nil {
		return ErrNoDictionary
	}
	if err := e.dict.AddWord(ctx, word, store.SourceUser); err != nil {
		return err
	}
	return e.rebuild(ctx)
}

// ImportWords stores several words at once and rebuilds the lexicon.
func (e *Engine) ImportWords(ctx context.Context, words []string) (int, error) {
	if e.dict == nil {
		return 0, ErrNoDictionary
	}
	n := 0
	for _, w := range words {
		if err := e.dict.AddWord(ctx, w, store.SourceImport); err != nil {
			return n, fmt.Errorf("import %q: %w", w, err)
		}
		n++
	}
	return n, e.rebuild(ctx)
}

// RemoveWord deletes a word from the user dictionary and rebuilds the lexicon.
func (e *Engine) RemoveWord(ctx context.Context, word string) error {
	if e.dict == nil {
		return ErrNoDictionary
	}
	if err := e.dict.RemoveWord(ctx, word); err != nil {
		return err
	}
	return e.rebuild(ctx)
}

// Words lists the user dictionary.
func (e *Engine) Words(ctx context.Context) ([]store.Entry, error) {
	if e.dict == nil {
		return nil, ErrNoDictionary
	}
	return e.dict.Entries(ctx)
}
