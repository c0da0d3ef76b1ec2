package rules

import (
	"fmt"
	"strings"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(Spaces)
}

// Spaces flags runs of more than one space between two tokens on a line.
var Spaces = lint.RuleDef{
	Name:        "Spaces",
	Description: "Flags irregular runs of spaces between words and punctuation.",
	Severity:    lint.SeverityWarning,
	Check:       checkSpaces,
	Rationale:   "Extra spaces are invisible in most editors but show up as uneven gaps once the text is rendered.",
	BadExample:  "Hello  world",
	GoodExample: "Hello world",
}

func checkSpaces(doc *document.Document, _ lint.Context) []lint.Lint {
	tokens := doc.Tokens()
	var lints []lint.Lint

	for i, tok := range tokens {
		// Leading indentation and trailing whitespace are formatting, not spacing.
		if !tok.IsWhitespace() || i == 0 || i == len(tokens)-1 || tok.Len() < 2 {
			continue
		}
		text := doc.TokenText(tok)
		if hasNewline(text) || strings.ContainsRune(text, '\t') {
			continue
		}
		msg := fmt.Sprintf("There are %d spaces where there should be only one.", tok.Len())
		lints = append(lints, newLint(tok.Span, msg, " "))
	}
	return lints
}
