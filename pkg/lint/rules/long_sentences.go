package rules

import (
	"fmt"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
)

func init() {
	lint.Register(LongSentences)
}

// LongSentences flags sentences with more words than max_words.
var LongSentences = lint.RuleDef{
	Name:        "LongSentences",
	Description: "Flags sentences that are long enough to be hard to follow.",
	Severity:    lint.SeverityHint,
	ConfigKeys:  []string{"max_words"},
	Check:       checkLongSentences,
	Rationale:   "Readers lose track of the subject in very long sentences; splitting them usually helps.",
}

const defaultMaxWords = 40

type longSentenceOptions struct {
	MaxWords int `option:"max_words"`
}

func checkLongSentences(doc *document.Document, ctx lint.Context) []lint.Lint {
	opts := longSentenceOptions{MaxWords: defaultMaxWords}
	if err := lint.DecodeOptions(ctx.Options, &opts); err != nil || opts.MaxWords <= 0 {
		return nil
	}

	var lints []lint.Lint
	for _, s := range doc.Sentences() {
		words := 0
		for i := s.First; i <= s.Last; i++ {
			if tok, _ := doc.TokenAt(i); tok.IsWord() {
				words++
			}
		}
		if words > opts.MaxWords {
			msg := fmt.Sprintf("This sentence is %d words long; consider splitting it.", words)
			lints = append(lints, newLint(s.Span(doc), msg))
		}
	}
	return lints
}
