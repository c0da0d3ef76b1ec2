package rules

import (
	"strings"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(RepeatedWords)
}

// RepeatedWords flags a word that directly repeats the word before it.
var RepeatedWords = lint.RuleDef{
	Name:        "RepeatedWords",
	Description: "Flags words that are accidentally typed twice in a row.",
	Severity:    lint.SeverityWarning,
	Check:       checkRepeatedWords,
	Rationale:   "Doubled words are a common typing slip that the eye skips over when proofreading.",
	BadExample:  "the the cat sat.",
	GoodExample: "the cat sat.",
}

// legitimateRepeats are words that are grammatical when doubled.
var legitimateRepeats = map[string]bool{
	"had":  true,
	"that": true,
}

func checkRepeatedWords(doc *document.Document, _ lint.Context) []lint.Lint {
	tokens := doc.Tokens()
	var lints []lint.Lint

	for i, tok := range tokens {
		if !tok.IsWord() {
			continue
		}
		prev := doc.PrevNonWhitespace(i)
		// Only whitespace may separate the pair.
		if prev == -1 || prev < i-2 || !tokens[prev].IsWord() {
			continue
		}
		first := doc.TokenText(tokens[prev])
		second := doc.TokenText(tok)
		if !strings.EqualFold(first, second) || legitimateRepeats[strings.ToLower(second)] {
			continue
		}
		lints = append(lints, newLint(tok.Span, "Did you mean to repeat this word?", first))
	}
	return lints
}
