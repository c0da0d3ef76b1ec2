package rules

import (
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(SpaceAfterPunctuation)
}

// SpaceAfterPunctuation flags a comma, semicolon or colon glued to the next
// word.
var SpaceAfterPunctuation = lint.RuleDef{
	Name:        "SpaceAfterPunctuation",
	Description: "Flags commas, semicolons and colons that are not followed by a space.",
	Severity:    lint.SeverityWarning,
	Check:       checkSpaceAfterPunctuation,
	BadExample:  "hello,world",
	GoodExample: "hello, world",
}

var separatingPunctuation = map[rune]bool{
	',': true,
	';': true,
	':': true,
}

func checkSpaceAfterPunctuation(doc *document.Document, _ lint.Context) []lint.Lint {
	tokens := doc.Tokens()
	var lints []lint.Lint

	for i := 1; i+1 < len(tokens); i++ {
		r, ok := punctuationRune(doc, tokens[i])
		if !ok || !separatingPunctuation[r] {
			continue
		}
		if !tokens[i-1].IsWord() || !tokens[i+1].IsWord() {
			continue
		}
		lints = append(lints, newLint(tokens[i].Span, "Add a space after this punctuation.", string(r)+" "))
	}
	return lints
}
