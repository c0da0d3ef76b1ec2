package rules_test

import (
	"testing"

	"github.com/lukasmwerner/harper/pkg/lint/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatedWords(t *testing.T) {
	runCases(t, rules.RepeatedWords, []ruleCase{
		{name: "repeated article", text: "the the cat sat.", want: []found{{4, 7, []string{"the"}}}},
		{name: "case insensitive", text: "The the end", want: []found{{4, 7, []string{"The"}}}},
		{name: "across a line break", text: "go\ngo", want: []found{{3, 5, []string{"go"}}}},
		{name: "triple", text: "no no no", want: []found{
			{3, 5, []string{"no"}},
			{6, 8, []string{"no"}},
		}},
		{name: "grammatical repeat", text: "I know that that is true"},
		{name: "separated by punctuation", text: "the, the"},
		{name: "empty", text: ""},
	})

	lints := evaluate(t, rules.RepeatedWords, "the the", nil)
	require.Len(t, lints, 1)
	assert.Equal(t, "Did you mean to repeat this word?", lints[0].Message)
}

func TestCapitalizePersonalPronouns(t *testing.T) {
	runCases(t, rules.CapitalizePersonalPronouns, []ruleCase{
		{name: "pronoun and contraction", text: "Yesterday i think i'm right.", want: []found{
			{10, 11, []string{"I"}},
			{18, 21, []string{"I'm"}},
		}},
		{name: "abbreviation", text: "i.e. this"},
		{name: "already capital", text: "I am"},
	})
}

func TestAnA(t *testing.T) {
	runCases(t, rules.AnA, []ruleCase{
		{name: "both directions", text: "a apple and an banana", want: []found{
			{0, 1, []string{"an"}},
			{12, 14, []string{"a"}},
		}},
		{name: "silent h", text: "A hour", want: []found{{0, 1, []string{"An"}}}},
		{name: "silent h correct", text: "An hour"},
		{name: "you sound", text: "an unicorn", want: []found{{0, 2, []string{"a"}}}},
		{name: "you sound correct", text: "a unicorn and a European"},
		{name: "acronym", text: "a FBI agent", want: []found{{0, 1, []string{"an"}}}},
		{name: "acronym correct", text: "an FBI agent saw a UFO"},
		{name: "eight", text: "a 8", want: []found{{0, 1, []string{"an"}}}},
		{name: "eleven", text: "a 11 and an 11", want: []found{{0, 1, []string{"an"}}}},
		{name: "one hundred", text: "a 180"},
		{name: "punctuation after article", text: "a, apple"},
	})
}

func TestCorrectNumberSuffix(t *testing.T) {
	runCases(t, rules.CorrectNumberSuffix, []ruleCase{
		{name: "wrong suffixes", text: "the 1th, 2rd and 11st place", want: []found{
			{5, 7, []string{"st"}},
			{10, 12, []string{"nd"}},
			{19, 21, []string{"th"}},
		}},
		{name: "correct", text: "1st 22nd 113th 1,001st"},
		{name: "upper case", text: "3TH", want: []found{{1, 3, []string{"RD"}}}},
		{name: "upper case correct", text: "3RD"},
		{name: "decimal", text: "1.5th"},
	})
}

func TestSpellCheck(t *testing.T) {
	runCases(t, rules.SpellCheck, []ruleCase{
		{name: "known words", text: "Hello world, the cat sat."},
		{name: "inflections", text: "walked quickly"},
		{name: "acronym", text: "NASA said"},
		{name: "digits", text: "abc123"},
		{name: "dialect variant", text: "colour color"},
		{name: "ignore option", text: "teh", opts: map[string]any{"ignore": []any{"Teh"}}},
		{name: "ignore capitalised", text: "Zorblax said", opts: map[string]any{"ignore_capitalized": true}},
	})

	t.Run("misspelling with suggestions", func(t *testing.T) {
		lints := evaluate(t, rules.SpellCheck, "Teh cat sat.", nil)
		require.Len(t, lints, 1)
		assert.Equal(t, 0, lints[0].Span.Start)
		assert.Equal(t, 3, lints[0].Span.End)
		assert.Contains(t, lints[0].Suggestions, "The")
		assert.LessOrEqual(t, len(lints[0].Suggestions), 3)
	})

	t.Run("max suggestions", func(t *testing.T) {
		lints := evaluate(t, rules.SpellCheck, "teh", map[string]any{"max_suggestions": 1})
		require.Len(t, lints, 1)
		assert.Len(t, lints[0].Suggestions, 1)
	})

	t.Run("unknown option disables the rule", func(t *testing.T) {
		assert.Empty(t, evaluate(t, rules.SpellCheck, "teh", map[string]any{"colour": "blue"}))
	})

	t.Run("missing lexicon yields no lints", func(t *testing.T) {
		r := rules.SpellCheck.Bind(lintContextWithoutLexicon())
		assert.Empty(t, r.Evaluate(newDoc("Zzyzx qwrtp")))
	})
}

func TestDialectSpelling(t *testing.T) {
	runCases(t, rules.DialectSpelling, []ruleCase{
		{name: "american words in australian", text: "My favorite color is gray.", want: []found{
			{3, 11, []string{"favourite"}},
			{12, 17, []string{"colour"}},
			{21, 25, []string{"grey"}},
		}},
		{name: "already australian", text: "My favourite colour is grey."},
	})

	t.Run("message names the dialect", func(t *testing.T) {
		lints := evaluate(t, rules.DialectSpelling, "color", nil)
		require.Len(t, lints, 1)
		assert.Equal(t, "Use the Australian spelling of this word.", lints[0].Message)
	})

	t.Run("case is preserved", func(t *testing.T) {
		lints := rules.DialectSpelling.Bind(americanContext()).Evaluate(newDoc("Colour"))
		require.Len(t, lints, 1)
		assert.Equal(t, []string{"Color"}, lints[0].Suggestions)
	})
}
