package rules

import (
	"fmt"

	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	lint.Register(DialectSpelling)
}

// DialectSpelling flags words spelled the way another dialect spells them.
var DialectSpelling = lint.RuleDef{
	Name:        "DialectSpelling",
	Description: "Flags spellings that belong to a different English dialect than the one configured.",
	Severity:    lint.SeverityInfo,
	Check:       checkDialectSpelling,
	BadExample:  "My favorite color is gray.",
	GoodExample: "My favourite colour is grey.",
}

func checkDialectSpelling(doc *document.Document, ctx lint.Context) []lint.Lint {
	if !ctx.Dialect.IsValid() {
		return nil
	}
	variants, err := dialect.Variants()
	if err != nil {
		return nil
	}
	name := cases.Title(language.English).String(ctx.Dialect.String())
	msg := fmt.Sprintf("Use the %s spelling of this word.", name)

	var lints []lint.Lint
	for _, i := range doc.Words() {
		tok, _ := doc.TokenAt(i)
		word := doc.TokenText(tok)
		preferred, ok := variants.Preferred(word, ctx.Dialect)
		if !ok {
			continue
		}
		lints = append(lints, newLint(tok.Span, msg, matchCase(word, preferred)))
	}
	return lints
}
