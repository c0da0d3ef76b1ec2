package rules

import (
	"fmt"
	"strings"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(CorrectNumberSuffix)
}

// CorrectNumberSuffix flags ordinals with the wrong suffix, such as "1th".
var CorrectNumberSuffix = lint.RuleDef{
	Name:        "CorrectNumberSuffix",
	Description: "Checks that ordinal numbers use the right suffix.",
	Severity:    lint.SeverityError,
	Check:       checkNumberSuffix,
	BadExample:  "the 1th, 2rd and 11st place",
	GoodExample: "the 1st, 2nd and 11th place",
}

var ordinalSuffixes = map[string]bool{"st": true, "nd": true, "rd": true, "th": true}

func checkNumberSuffix(doc *document.Document, _ lint.Context) []lint.Lint {
	tokens := doc.Tokens()
	var lints []lint.Lint

	for i := 0; i+1 < len(tokens); i++ {
		if !tokens[i].IsNumber() || !tokens[i+1].IsWord() {
			continue
		}
		num := doc.TokenText(tokens[i])
		if strings.Contains(num, ".") {
			continue
		}
		suffix := doc.TokenText(tokens[i+1])
		if !ordinalSuffixes[strings.ToLower(suffix)] {
			continue
		}
		want := ordinalSuffix(strings.ReplaceAll(num, ",", ""))
		if strings.EqualFold(suffix, want) {
			continue
		}
		msg := fmt.Sprintf("The ordinal of %s ends in %q.", num, want)
		lints = append(lints, newLint(tokens[i+1].Span, msg, matchCase(suffix, want)))
	}
	return lints
}

// ordinalSuffix works on the decimal string so arbitrarily long numbers are
// fine.
func ordinalSuffix(digits string) string {
	n := len(digits)
	if n >= 2 && digits[n-2] == '1' {
		return "th"
	}
	switch digits[n-1] {
	case '1':
		return "st"
	case '2':
		return "nd"
	case '3':
		return "rd"
	default:
		return "th"
	}
}
