package rules_test

import (
	"testing"

	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/lint/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(text string) *document.Document { return document.New(text) }

func lintContextWithoutLexicon() lint.Context {
	return lint.Context{Dialect: dialect.Australian}
}

func americanContext() lint.Context {
	return lint.Context{Dialect: dialect.American}
}

func TestSentenceCapitalization(t *testing.T) {
	runCases(t, rules.SentenceCapitalization, []ruleCase{
		{name: "two sentences", text: "the cat sat. it was happy.", want: []found{
			{0, 3, []string{"The"}},
			{13, 15, []string{"It"}},
		}},
		{name: "capitalised", text: "Hello there. Fine."},
		{name: "abbreviation", text: "Use e.g. this."},
		{name: "quoted", text: `"why?" she asked.`, want: []found{{1, 4, []string{"Why"}}}},
		{name: "mixed case brand", text: "iPhone sales rose."},
		{name: "starts with number", text: "42 is the answer."},
		{name: "demo input", text: "hello,World ! ", want: []found{{0, 5, []string{"Hello"}}}},
	})
}

func TestLongSentences(t *testing.T) {
	runCases(t, rules.LongSentences, []ruleCase{
		{name: "over the limit", text: "One two three four. Short one.", opts: map[string]any{"max_words": 3},
			want: []found{{0, 19, nil}}},
		{name: "string option from env", text: "One two three four.", opts: map[string]any{"max_words": "3"},
			want: []found{{0, 19, nil}}},
		{name: "default limit", text: "One two three four."},
		{name: "invalid option", text: "One two three four.", opts: map[string]any{"max_words": "lots"}},
	})

	lints := evaluate(t, rules.LongSentences, "One two three four.", map[string]any{"max_words": 3})
	require.Len(t, lints, 1)
	assert.Contains(t, lints[0].Message, "4 words")
}

func TestEllipsisLength(t *testing.T) {
	runCases(t, rules.EllipsisLength, []ruleCase{
		{name: "too long and too short", text: "Wait.... what..", want: []found{
			{4, 8, []string{"..."}},
			{13, 15, []string{"..."}},
		}},
		{name: "correct", text: "Fine... and …"},
	})
}

func TestUnclosedQuotes(t *testing.T) {
	runCases(t, rules.UnclosedQuotes, []ruleCase{
		{name: "straight unclosed", text: `She said "hello and left.`, want: []found{{9, 10, nil}}},
		{name: "straight closed", text: `She said "hello" and left.`},
		{name: "curly unclosed", text: "“open", want: []found{{0, 1, nil}}},
		{name: "curly stray close", text: "close”", want: []found{{5, 6, nil}}},
		{name: "curly balanced", text: "“nested “inner” outer”"},
	})
}
