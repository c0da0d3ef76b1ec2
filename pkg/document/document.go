// Package document provides the immutable, tokenized view of a text that
// every lint rule reads from.
//
// A Document is built once from its text and never changes afterwards, so it
// can be shared freely between goroutines. Editing text means constructing a
// new Document.
package document

import (
	"sort"

	"github.com/lukasmwerner/harper/pkg/lexer"
	"github.com/lukasmwerner/harper/pkg/token"
)

// Document owns a text and its token stream.
type Document struct {
	text   string
	runes  []rune
	tokens []token.Token
}

// New tokenizes text and returns the resulting Document.
func New(text string) *Document {
	runes := []rune(text)
	return &Document{
		text:   text,
		runes:  runes,
		tokens: lexer.NewFromRunes(runes).All(),
	}
}

// Text returns the original text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the length of the text in runes.
func (d *Document) Len() int {
	return len(d.runes)
}

// TokenCount returns the number of tokens.
func (d *Document) TokenCount() int {
	return len(d.tokens)
}

// TokenAt returns the token at index i.
func (d *Document) TokenAt(i int) (token.Token, error) {
	if i < 0 || i >= len(d.tokens) {
		return token.Token{}, &IndexError{Index: i, Count: len(d.tokens)}
	}
	return d.tokens[i], nil
}

// Tokens returns a copy of the token sequence.
func (d *Document) Tokens() []token.Token {
	out := make([]token.Token, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// TextInSpan returns the text covered by span.
func (d *Document) TextInSpan(span token.Span) (string, error) {
	if !span.IsValid(len(d.runes)) {
		return "", &SpanError{Span: span, Length: len(d.runes)}
	}
	return string(d.runes[span.Start:span.End]), nil
}

// TokenText returns the text of a token produced by this document.
// Tokens from elsewhere that do not fit yield an empty string.
func (d *Document) TokenText(tok token.Token) string {
	s, err := d.TextInSpan(tok.Span)
	if err != nil {
		return ""
	}
	return s
}

// RuneAt returns the rune at offset, or 0 when offset is out of bounds.
func (d *Document) RuneAt(offset int) rune {
	if offset < 0 || offset >= len(d.runes) {
		return 0
	}
	return d.runes[offset]
}

// TokenIndexAt returns the index of the token containing the rune offset,
// or -1 when the offset is outside the text.
func (d *Document) TokenIndexAt(offset int) int {
	if offset < 0 || offset >= len(d.runes) {
		return -1
	}
	i := sort.Search(len(d.tokens), func(i int) bool {
		return d.tokens[i].Span.End > offset
	})
	if i == len(d.tokens) {
		return -1
	}
	return i
}
