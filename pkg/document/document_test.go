package document_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/lukasmwerner/harper/pkg/document"
	"github.com/lukasmwerner/harper/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Empty(t *testing.T) {
	doc := document.New("")

	assert.Equal(t, "", doc.Text())
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, 0, doc.TokenCount())
	assert.Empty(t, doc.Sentences())

	_, err := doc.TokenAt(0)
	assert.ErrorIs(t, err, document.ErrOutOfRange)

	s, err := doc.TextInSpan(token.NewSpan(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestDocument_TokenAt(t *testing.T) {
	doc := document.New("the the cat sat.")
	require.Equal(t, 8, doc.TokenCount())

	tests := []struct {
		name    string
		index   int
		want    token.Token
		wantErr bool
	}{
		{name: "first", index: 0, want: token.New(token.Word, 0, 3)},
		{name: "second word", index: 2, want: token.New(token.Word, 4, 7)},
		{name: "last", index: 7, want: token.New(token.Punctuation, 15, 16)},
		{name: "negative", index: -1, wantErr: true},
		{name: "past end", index: 8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := doc.TokenAt(tt.index)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, document.ErrOutOfRange))
				var ie *document.IndexError
				require.ErrorAs(t, err, &ie)
				assert.Equal(t, tt.index, ie.Index)
				assert.Equal(t, 8, ie.Count)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tok)
		})
	}
}

func TestDocument_TextInSpan(t *testing.T) {
	doc := document.New("naïve café")

	tests := []struct {
		name    string
		span    token.Span
		want    string
		wantErr bool
	}{
		{name: "rune offsets not bytes", span: token.NewSpan(6, 10), want: "café"},
		{name: "whole text", span: token.NewSpan(0, 10), want: "naïve café"},
		{name: "empty span", span: token.NewSpan(3, 3), want: ""},
		{name: "end past length", span: token.NewSpan(6, 11), wantErr: true},
		{name: "inverted", span: token.NewSpan(5, 2), wantErr: true},
		{name: "negative start", span: token.NewSpan(-1, 2), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.TextInSpan(tt.span)
			if tt.wantErr {
				assert.ErrorIs(t, err, document.ErrInvalidSpan)
				var se *document.SpanError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, 10, se.Length)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_TokensIsACopy(t *testing.T) {
	doc := document.New("a b")
	tokens := doc.Tokens()
	tokens[0] = token.New(token.Other, 0, 3)

	first, err := doc.TokenAt(0)
	require.NoError(t, err)
	assert.Equal(t, token.Word, first.Kind)
}

func TestDocument_TokenIndexAt(t *testing.T) {
	doc := document.New("Hello  world")

	assert.Equal(t, 0, doc.TokenIndexAt(0))
	assert.Equal(t, 0, doc.TokenIndexAt(4))
	assert.Equal(t, 1, doc.TokenIndexAt(5))
	assert.Equal(t, 1, doc.TokenIndexAt(6))
	assert.Equal(t, 2, doc.TokenIndexAt(7))
	assert.Equal(t, -1, doc.TokenIndexAt(12))
	assert.Equal(t, -1, doc.TokenIndexAt(-3))
}

func TestDocument_NonWhitespaceNavigation(t *testing.T) {
	doc := document.New("one ,  two")
	// tokens: one, " ", ",", "  ", two
	assert.Equal(t, 2, doc.NextNonWhitespace(0))
	assert.Equal(t, 4, doc.NextNonWhitespace(2))
	assert.Equal(t, -1, doc.NextNonWhitespace(4))
	assert.Equal(t, 2, doc.PrevNonWhitespace(4))
	assert.Equal(t, -1, doc.PrevNonWhitespace(0))
}

func TestDocument_Sentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "Hello world.", want: []string{"Hello world."}},
		{name: "multiple", input: "Hi! How are you? Fine", want: []string{"Hi!", "How are you?", "Fine"}},
		{name: "decimal is not a terminator", input: "It costs 3.5 dollars.", want: []string{"It costs 3.5 dollars."}},
		{name: "abbreviation", input: "Use e.g. this.", want: []string{"Use e.g.", "this."}},
		{name: "trailing whitespace", input: "  padded  ", want: []string{"padded"}},
		{name: "whitespace only", input: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New(tt.input)
			var got []string
			for _, s := range doc.Sentences() {
				text, err := doc.TextInSpan(s.Span(doc))
				require.NoError(t, err)
				got = append(got, text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_ConcurrentReads(t *testing.T) {
	doc := document.New("Concurrent readers share one immutable document.")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < doc.TokenCount(); j++ {
				tok, err := doc.TokenAt(j)
				assert.NoError(t, err)
				_, err = doc.TextInSpan(tok.Span)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
