// Package token defines the lexical units of a prose document.
//
// Every token carries a Span measured in Unicode scalar values (runes) into
// the text it was produced from. A well-formed token stream partitions that
// text exactly: spans are contiguous, ascending and never overlap.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind uint8

const (
	Word Kind = iota
	Whitespace
	Punctuation
	Number
	Other
)

var kindNames = map[Kind]string{
	Word:        "word",
	Whitespace:  "whitespace",
	Punctuation: "punctuation",
	Number:      "number",
	Other:       "other",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts a kind name back into a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return Other, false
}

// Token is a single lexical unit.
type Token struct {
	Span Span
	Kind Kind
}

// New creates a token covering [start, end).
func New(kind Kind, start, end int) Token {
	return Token{Span: Span{Start: start, End: end}, Kind: kind}
}

// Len returns the number of runes the token covers.
func (t Token) Len() int {
	return t.Span.Len()
}

// IsWord reports whether the token is a Word.
func (t Token) IsWord() bool { return t.Kind == Word }

// IsWhitespace reports whether the token is Whitespace.
func (t Token) IsWhitespace() bool { return t.Kind == Whitespace }

// IsPunctuation reports whether the token is Punctuation.
func (t Token) IsPunctuation() bool { return t.Kind == Punctuation }

// IsNumber reports whether the token is a Number.
func (t Token) IsNumber() bool { return t.Kind == Number }

func (t Token) String() string {
	return fmt.Sprintf("%s%s", t.Kind, t.Span)
}
