package fix_test

import (
	"errors"
	"testing"

	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/fix"
	"github.com/lukasmwerner/harper/pkg/lexicon"
	"github.com/lukasmwerner/harper/pkg/lint"
	_ "github.com/lukasmwerner/harper/pkg/lint/rules"
	"github.com/lukasmwerner/harper/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sugg(rule string, start, end int, suggestions ...string) lint.Lint {
	return lint.Lint{Rule: rule, Span: token.NewSpan(start, end), Suggestions: suggestions}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		lints       []lint.Lint
		want        string
		wantApplied int
		wantSkipped int
		wantErr     error
	}{
		{
			name:        "single replacement",
			text:        "the the cat",
			lints:       []lint.Lint{sugg("RepeatedWords", 3, 7, "")},
			want:        "the cat",
			wantApplied: 1,
		},
		{
			name: "unsorted input",
			text: "hello  world ,",
			lints: []lint.Lint{
				sugg("SpaceBeforePunctuation", 12, 13, ""),
				sugg("Spaces", 5, 7, " "),
				sugg("SentenceCapitalization", 0, 5, "Hello"),
			},
			want:        "Hello world,",
			wantApplied: 3,
		},
		{
			name: "overlap skipped",
			text: "abcdef",
			lints: []lint.Lint{
				sugg("A", 0, 3, "X"),
				sugg("B", 2, 4, "Y"),
				sugg("C", 4, 6, "Z"),
			},
			want:        "XdZ",
			wantApplied: 2,
			wantSkipped: 1,
		},
		{
			name:        "rune coordinates",
			text:        "café  au lait",
			lints:       []lint.Lint{sugg("Spaces", 4, 6, " ")},
			want:        "café au lait",
			wantApplied: 1,
		},
		{
			name:        "insertion",
			text:        "ab",
			lints:       []lint.Lint{sugg("Insert", 1, 1, "-")},
			want:        "a-b",
			wantApplied: 1,
		},
		{
			name:        "invalid span skipped",
			text:        "abc",
			lints:       []lint.Lint{sugg("Bad", 2, 9, "x"), sugg("Ok", 0, 1, "A")},
			want:        "Abc",
			wantApplied: 1,
			wantSkipped: 1,
		},
		{
			name:    "no suggestions",
			text:    "abc",
			lints:   []lint.Lint{{Rule: "LongSentences", Span: token.NewSpan(0, 3)}},
			want:    "abc",
			wantErr: fix.ErrNoFixes,
		},
		{
			name:    "replacement equal to text",
			text:    "the the cat",
			lints:   []lint.Lint{sugg("RepeatedWords", 4, 7, "the")},
			want:    "the the cat",
			wantErr: fix.ErrNoFixes,
		},
		{
			name:    "no lints",
			text:    "abc",
			want:    "abc",
			wantErr: fix.ErrNoFixes,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := fix.Apply(tt.text, tt.lints, nil)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, res.Text)
			assert.Len(t, res.Applied, tt.wantApplied)
			assert.Len(t, res.Skipped, tt.wantSkipped)
			assert.Equal(t, tt.wantApplied > 0, res.Changed())
		})
	}
}

func TestApply_Chooser(t *testing.T) {
	lints := []lint.Lint{
		sugg("SpellCheck", 0, 3, "ten", "the"),
		sugg("Spaces", 3, 5, " "),
	}

	res, err := fix.Apply("teh  cat", lints, func(l lint.Lint) (string, bool) {
		if len(l.Suggestions) < 2 {
			return fix.First(l)
		}
		return l.Suggestions[1], true
	})
	require.NoError(t, err)
	assert.Equal(t, "the cat", res.Text)

	res, err = fix.Apply("teh  cat", lints, fix.OnlyRules(fix.First, "Spaces"))
	require.NoError(t, err)
	assert.Equal(t, "teh cat", res.Text)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, "Spaces", res.Applied[0].Rule)
}

func TestIterate(t *testing.T) {
	group, err := lint.NewCurated(dialect.Australian, lexicon.Curated(), nil)
	require.NoError(t, err)
	group.SetAllEnabled(false)
	group.SetEnabled("RepeatedWords", true)
	group.SetEnabled("Spaces", true)

	lintFn := func(text string) ([]lint.Lint, error) {
		return group.Evaluate(document.New(text)), nil
	}

	// Removing the repeated word leaves a double space that the next pass fixes.
	res, err := fix.Iterate("I saw  the the  cat", lintFn, fixRepeatedByDeletion, 0)
	require.NoError(t, err)
	assert.Equal(t, "I saw the cat", res.Text)
	assert.GreaterOrEqual(t, res.Passes, 2)

	_, err = fix.Iterate("I saw the cat", lintFn, nil, 0)
	require.ErrorIs(t, err, fix.ErrNoFixes)

	t.Run("pass limit", func(t *testing.T) {
		res, err := fix.Iterate("I saw  the the  cat", lintFn, fixRepeatedByDeletion, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Passes)
	})

	t.Run("lint error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := fix.Iterate("x", func(string) ([]lint.Lint, error) { return nil, boom }, nil, 3)
		require.ErrorIs(t, err, boom)
	})
}

// fixRepeatedByDeletion removes a repeated word instead of rewriting it.
func fixRepeatedByDeletion(l lint.Lint) (string, bool) {
	if l.Rule == "RepeatedWords" {
		return "", true
	}
	return fix.First(l)
}
