package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

func newLint(span token.Span, message string, suggestions ...string) lint.Lint {
	return lint.Lint{
		Message:     message,
		Span:        span,
		Suggestions: suggestions,
	}
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isUpperWord(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters > 0
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// hasInnerUpper reports mixed case such as "iPhone" or "McDonald".
func hasInnerUpper(s string) bool {
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// matchCase shapes replacement after original: ALL CAPS, Capitalised or as is.
func matchCase(original, replacement string) string {
	switch {
	case utf8.RuneCountInString(original) > 1 && isUpperWord(original):
		return strings.ToUpper(replacement)
	case startsUpper(original):
		return capitalize(replacement)
	default:
		return replacement
	}
}

func hasNewline(s string) bool {
	return strings.ContainsAny(s, "\n\r\u2028\u2029")
}

// punctuationRune returns the rune of a single-rune punctuation token.
func punctuationRune(doc *document.Document, tok token.Token) (rune, bool) {
	if !tok.IsPunctuation() || tok.Len() != 1 {
		return 0, false
	}
	return doc.RuneAt(tok.Span.Start), true
}
