package lexer_test

import (
	"testing"

	"github.com/lukasmwerner/harper/pkg/lexer"
	"github.com/lukasmwerner/harper/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expected struct {
	text string
	kind token.Kind
}

func lexed(text string) []expected {
	runes := []rune(text)
	var out []expected
	for _, tok := range lexer.Tokenize(text) {
		out = append(out, expected{string(runes[tok.Span.Start:tok.Span.End]), tok.Kind})
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []expected
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "simple sentence",
			input: "the the cat sat.",
			want: []expected{
				{"the", token.Word}, {" ", token.Whitespace},
				{"the", token.Word}, {" ", token.Whitespace},
				{"cat", token.Word}, {" ", token.Whitespace},
				{"sat", token.Word}, {".", token.Punctuation},
			},
		},
		{
			name:  "whitespace runs are one token",
			input: "Hello  \n world",
			want: []expected{
				{"Hello", token.Word}, {"  \n ", token.Whitespace}, {"world", token.Word},
			},
		},
		{
			name:  "numbers with separators",
			input: "1,000.50 and 3.",
			want: []expected{
				{"1,000.50", token.Number}, {" ", token.Whitespace},
				{"and", token.Word}, {" ", token.Whitespace},
				{"3", token.Number}, {".", token.Punctuation},
			},
		},
		{
			name:  "contractions stay whole",
			input: "don't it’s",
			want: []expected{
				{"don't", token.Word}, {" ", token.Whitespace}, {"it’s", token.Word},
			},
		},
		{
			name:  "quotes are not part of words",
			input: "'tis'",
			want: []expected{
				{"'", token.Punctuation}, {"tis", token.Word}, {"'", token.Punctuation},
			},
		},
		{
			name:  "ellipsis cluster",
			input: "wait... what….",
			want: []expected{
				{"wait", token.Word}, {"...", token.Punctuation}, {" ", token.Whitespace},
				{"what", token.Word}, {"…", token.Punctuation}, {".", token.Punctuation},
			},
		},
		{
			name:  "ordinal splits number and suffix",
			input: "1st",
			want:  []expected{{"1", token.Number}, {"st", token.Word}},
		},
		{
			name:  "symbols and emoji are other",
			input: "a+b 🙂",
			want: []expected{
				{"a", token.Word}, {"+", token.Other}, {"b", token.Word},
				{" ", token.Whitespace}, {"🙂", token.Other},
			},
		},
		{
			name:  "original demo input",
			input: "hello,World ! ",
			want: []expected{
				{"hello", token.Word}, {",", token.Punctuation}, {"World", token.Word},
				{" ", token.Whitespace}, {"!", token.Punctuation}, {" ", token.Whitespace},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexed(tt.input))
		})
	}
}

func TestTokenize_FullCoverage(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"Hello, world!",
		"Ünïcödé wörds and 日本語 text…",
		"tabs\tand\r\nnewlines",
		"12,34,56.7.8 ... .... ? !",
		"mixed 🙂 emoji, ‘curly’ “quotes”",
		"école",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			runes := []rune(input)
			tokens := lexer.Tokenize(input)

			next := 0
			rebuilt := ""
			for _, tok := range tokens {
				require.Equal(t, next, tok.Span.Start, "gap or overlap before %s", tok)
				require.Greater(t, tok.Span.End, tok.Span.Start, "empty token %s", tok)
				rebuilt += string(runes[tok.Span.Start:tok.Span.End])
				next = tok.Span.End
			}
			assert.Equal(t, len(runes), next)
			assert.Equal(t, input, rebuilt)
		})
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	input := "It's 3.14 o'clock... isn't it?  Yes!"
	first := lexer.Tokenize(input)
	second := lexer.Tokenize(input)
	assert.Equal(t, first, second)
}

func TestLexer_Next(t *testing.T) {
	l := lexer.New("hi!")

	tok, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, token.New(token.Word, 0, 2), tok)

	tok, ok = l.Next()
	require.True(t, ok)
	assert.Equal(t, token.New(token.Punctuation, 2, 3), tok)

	_, ok = l.Next()
	assert.False(t, ok)
}
