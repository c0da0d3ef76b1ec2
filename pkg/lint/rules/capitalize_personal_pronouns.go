package rules

import (
	"strings"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(CapitalizePersonalPronouns)
}

// CapitalizePersonalPronouns flags a lowercase "i" and its contractions.
var CapitalizePersonalPronouns = lint.RuleDef{
	Name:        "CapitalizePersonalPronouns",
	Description: "Flags the pronoun I written in lowercase.",
	Severity:    lint.SeverityWarning,
	Check:       checkPersonalPronouns,
	BadExample:  "Yesterday i think i'm right.",
	GoodExample: "Yesterday I think I'm right.",
}

func checkPersonalPronouns(doc *document.Document, _ lint.Context) []lint.Lint {
	var lints []lint.Lint
	for _, i := range doc.Words() {
		tok, _ := doc.TokenAt(i)
		word := doc.TokenText(tok)
		if word != "i" && !strings.HasPrefix(word, "i'") && !strings.HasPrefix(word, "i’") {
			continue
		}
		// "i.e." is an abbreviation, not a pronoun.
		if next, err := doc.TokenAt(i + 1); err == nil {
			if r, ok := punctuationRune(doc, next); ok && r == '.' {
				continue
			}
		}
		lints = append(lints, newLint(tok.Span, "The pronoun I is always capitalised.", capitalize(word)))
	}
	return lints
}
