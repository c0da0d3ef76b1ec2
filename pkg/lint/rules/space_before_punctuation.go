package rules

import (
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(SpaceBeforePunctuation)
}

// SpaceBeforePunctuation flags whitespace between a word and the punctuation
// that should attach to it.
var SpaceBeforePunctuation = lint.RuleDef{
	Name:        "SpaceBeforePunctuation",
	Description: "Flags spaces placed before commas, periods and other closing punctuation.",
	Severity:    lint.SeverityWarning,
	Check:       checkSpaceBeforePunctuation,
	BadExample:  "Hello , world !",
	GoodExample: "Hello, world!",
}

var closingPunctuation = map[rune]bool{
	',': true,
	'.': true,
	';': true,
	':': true,
	'!': true,
	'?': true,
}

func checkSpaceBeforePunctuation(doc *document.Document, _ lint.Context) []lint.Lint {
	tokens := doc.Tokens()
	var lints []lint.Lint

	for i := 1; i+1 < len(tokens); i++ {
		ws := tokens[i]
		if !ws.IsWhitespace() || hasNewline(doc.TokenText(ws)) {
			continue
		}
		before := tokens[i-1]
		if !before.IsWord() && !before.IsNumber() {
			continue
		}
		r, ok := punctuationRune(doc, tokens[i+1])
		if !ok || !closingPunctuation[r] {
			continue
		}
		lints = append(lints, newLint(ws.Span, "Remove the space before this punctuation.", ""))
	}
	return lints
}
