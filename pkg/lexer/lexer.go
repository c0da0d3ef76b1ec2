// Package lexer splits prose into a token stream.
//
// The lexer works on runes, never bytes, so every span it produces can be
// used directly as a character offset into the original text. It never
// fails: any rune it does not recognise becomes an Other token.
package lexer

import (
	"unicode"

	"github.com/lukasmwerner/harper/pkg/token"
)

// Lexer tokenizes prose input.
type Lexer struct {
	input []rune
	pos   int // current position in input
}

// New creates a Lexer over text.
func New(text string) *Lexer {
	return &Lexer{input: []rune(text)}
}

// NewFromRunes creates a Lexer over an already decoded rune slice.
// The slice is not copied and must not be modified while lexing.
func NewFromRunes(input []rune) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns the full token stream for text.
func Tokenize(text string) []token.Token {
	return New(text).All()
}

// All consumes the remaining input and returns its tokens.
func (l *Lexer) All() []token.Token {
	tokens := make([]token.Token, 0, len(l.input)/3+1)
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or false once the input is exhausted.
func (l *Lexer) Next() (token.Token, bool) {
	if l.pos >= len(l.input) {
		return token.Token{}, false
	}

	start := l.pos
	ch := l.input[l.pos]

	var kind token.Kind
	switch {
	case unicode.IsSpace(ch):
		l.readWhile(unicode.IsSpace)
		kind = token.Whitespace
	case unicode.IsDigit(ch):
		l.readNumber()
		kind = token.Number
	case isWordStart(ch):
		l.readWord()
		kind = token.Word
	case ch == '.' && l.peek(1) == '.':
		l.readWhile(func(r rune) bool { return r == '.' })
		kind = token.Punctuation
	case unicode.IsPunct(ch):
		l.pos++
		kind = token.Punctuation
	default:
		l.pos++
		kind = token.Other
	}

	return token.New(kind, start, l.pos), true
}

// peek returns the rune n positions ahead of the current one, or 0.
func (l *Lexer) peek(n int) rune {
	if l.pos+n >= len(l.input) || l.pos+n < 0 {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) readWhile(pred func(rune) bool) {
	for l.pos < len(l.input) && pred(l.input[l.pos]) {
		l.pos++
	}
}

// readNumber consumes digits with embedded separators: 1,000.50 is one token,
// a trailing "1." leaves the period for the punctuation rules.
func (l *Lexer) readNumber() {
	l.readWhile(unicode.IsDigit)
	for l.pos < len(l.input) {
		sep := l.input[l.pos]
		if (sep == ',' || sep == '.') && unicode.IsDigit(l.peek(1)) {
			l.pos++
			l.readWhile(unicode.IsDigit)
			continue
		}
		return
	}
}

// readWord consumes letters, marks and digits. An apostrophe joins the word
// only when letters sit on both sides of it, so contractions stay whole
// while quoted words do not swallow their quotes.
func (l *Lexer) readWord() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isWordChar(ch):
			l.pos++
		case isApostrophe(ch) && unicode.IsLetter(l.peek(-1)) && unicode.IsLetter(l.peek(1)):
			l.pos++
		default:
			return
		}
	}
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}
