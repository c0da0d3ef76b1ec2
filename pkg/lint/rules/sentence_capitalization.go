package rules

import (
	"strings"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(SentenceCapitalization)
}

// SentenceCapitalization flags sentences that start with a lowercase word.
var SentenceCapitalization = lint.RuleDef{
	Name:        "SentenceCapitalization",
	Description: "Flags sentences whose first word is not capitalised.",
	Severity:    lint.SeverityWarning,
	Check:       checkSentenceCapitalization,
	BadExample:  "the cat sat. it was happy.",
	GoodExample: "The cat sat. It was happy.",
}

// abbreviations end with a period that does not end the sentence.
var abbreviations = map[string]bool{
	"e": true, "g": true, "i": true,
	"eg": true, "ie": true, "etc": true, "vs": true,
	"mr": true, "mrs": true, "ms": true, "dr": true, "st": true,
}

func checkSentenceCapitalization(doc *document.Document, _ lint.Context) []lint.Lint {
	var lints []lint.Lint
	sentences := doc.Sentences()

	for n, s := range sentences {
		if n > 0 && endsWithAbbreviation(doc, sentences[n-1]) {
			continue
		}
		first := firstWord(doc, s)
		if first == -1 {
			continue
		}
		tok, _ := doc.TokenAt(first)
		word := doc.TokenText(tok)
		if startsUpper(word) || hasInnerUpper(word) {
			continue
		}
		lints = append(lints, newLint(tok.Span, "This sentence does not start with a capital letter.", capitalize(word)))
	}
	return lints
}

// firstWord skips opening quotes and brackets. A sentence that starts with
// a number or symbol has no first word to check.
func firstWord(doc *document.Document, s document.Sentence) int {
	for i := s.First; i <= s.Last; i++ {
		tok, _ := doc.TokenAt(i)
		switch {
		case tok.IsWord():
			return i
		case tok.IsPunctuation():
			if r, ok := punctuationRune(doc, tok); ok && strings.ContainsRune(`"'“‘([`, r) {
				continue
			}
			return -1
		default:
			return -1
		}
	}
	return -1
}

func endsWithAbbreviation(doc *document.Document, s document.Sentence) bool {
	last, _ := doc.TokenAt(s.Last)
	if r, ok := punctuationRune(doc, last); !ok || r != '.' {
		return false
	}
	if s.Last == 0 {
		return false
	}
	prev, _ := doc.TokenAt(s.Last - 1)
	return prev.IsWord() && abbreviations[strings.ToLower(doc.TokenText(prev))]
}
