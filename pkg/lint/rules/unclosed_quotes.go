package rules

import (
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

func init() {
	lint.Register(UnclosedQuotes)
}

// UnclosedQuotes flags double quotes that are never closed.
var UnclosedQuotes = lint.RuleDef{
	Name:        "UnclosedQuotes",
	Description: "Flags opening double quotes without a matching closing quote, and the reverse.",
	Severity:    lint.SeverityWarning,
	Check:       checkUnclosedQuotes,
	BadExample:  `She said "hello and left.`,
	GoodExample: `She said "hello" and left.`,
}

func checkUnclosedQuotes(doc *document.Document, _ lint.Context) []lint.Lint {
	var (
		lints    []lint.Lint
		straight = -1          // index of the open straight quote
		curly    []token.Token // open curly quotes
	)

	tokens := doc.Tokens()
	for i, tok := range tokens {
		r, ok := punctuationRune(doc, tok)
		if !ok {
			continue
		}
		switch r {
		case '"':
			if straight == -1 {
				straight = i
			} else {
				straight = -1
			}
		case '“':
			curly = append(curly, tok)
		case '”':
			if len(curly) == 0 {
				lints = append(lints, newLint(tok.Span, "This closing quote has no matching opening quote."))
				continue
			}
			curly = curly[:len(curly)-1]
		}
	}

	if straight != -1 {
		lints = append(lints, newLint(tokens[straight].Span, "This quote is never closed."))
	}
	for _, tok := range curly {
		lints = append(lints, newLint(tok.Span, "This quote is never closed."))
	}
	return lints
}
