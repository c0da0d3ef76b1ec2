package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(SpellCheck)
}

// SpellCheck flags words that are not in the lexicon.
var SpellCheck = lint.RuleDef{
	Name:        "SpellCheck",
	Description: "Flags words that do not appear in the dictionary and suggests close matches.",
	Severity:    lint.SeverityError,
	ConfigKeys:  []string{"max_suggestions", "ignore", "ignore_capitalized"},
	Check:       checkSpelling,
	BadExample:  "Teh cat sat.",
	GoodExample: "The cat sat.",
}

type spellCheckOptions struct {
	MaxSuggestions    int      `option:"max_suggestions"`
	Ignore            []string `option:"ignore"`
	IgnoreCapitalized bool     `option:"ignore_capitalized"`
}

func checkSpelling(doc *document.Document, ctx lint.Context) []lint.Lint {
	lex := ctx.Lexicon
	// Without a usable lexicon every word would be flagged.
	if lex.Validate() != nil {
		return nil
	}
	opts := spellCheckOptions{MaxSuggestions: 3}
	if err := lint.DecodeOptions(ctx.Options, &opts); err != nil {
		return nil
	}
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, w := range opts.Ignore {
		ignore[strings.ToLower(w)] = true
	}
	variants, _ := dialect.Variants()

	var lints []lint.Lint
	for _, i := range doc.Words() {
		tok, _ := doc.TokenAt(i)
		word := doc.TokenText(tok)

		if skipSpelling(word, opts.IgnoreCapitalized) || ignore[strings.ToLower(word)] {
			continue
		}
		if lex.Knows(word) {
			continue
		}
		if _, ok := variants.Lookup(word); ok {
			continue
		}

		suggestions := lex.Suggest(word, opts.MaxSuggestions)
		for j, s := range suggestions {
			suggestions[j] = matchCase(word, s)
		}
		msg := fmt.Sprintf("Did you mean to spell %q this way?", word)
		lints = append(lints, newLint(tok.Span, msg, suggestions...))
	}
	return lints
}

// skipSpelling filters acronyms and words containing digits.
func skipSpelling(word string, ignoreCapitalized bool) bool {
	if len([]rune(word)) > 1 && isUpperWord(word) {
		return true
	}
	if strings.IndexFunc(word, unicode.IsDigit) >= 0 {
		return true
	}
	return ignoreCapitalized && startsUpper(word)
}
