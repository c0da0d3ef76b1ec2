package rules

import (
	"strings"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(EllipsisLength)
}

// EllipsisLength flags runs of periods that are not exactly three long.
var EllipsisLength = lint.RuleDef{
	Name:        "EllipsisLength",
	Description: "Flags ellipses written with the wrong number of periods.",
	Severity:    lint.SeverityWarning,
	Check:       checkEllipsisLength,
	BadExample:  "Wait.... what..",
	GoodExample: "Wait... what...",
}

func checkEllipsisLength(doc *document.Document, _ lint.Context) []lint.Lint {
	var lints []lint.Lint
	for _, tok := range doc.Tokens() {
		if !tok.IsPunctuation() || tok.Len() < 2 || tok.Len() == 3 {
			continue
		}
		if strings.Trim(doc.TokenText(tok), ".") != "" {
			continue
		}
		lints = append(lints, newLint(tok.Span, "An ellipsis has exactly three periods.", "..."))
	}
	return lints
}
