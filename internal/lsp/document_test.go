package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///notes/draft.md"
	content := "I saw the the cat."

	store.Open(uri, content, 1)

	doc := store.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, 18, doc.Len())

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///notes/draft.md"
	store.Open(uri, "one", 1)
	old := store.Get(uri)

	store.Update(uri, "two", 2)

	doc := store.Get(uri)
	assert.Equal(t, "two", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, "one", old.Content, "previous snapshot is unchanged")

	store.Update("file:///missing.md", "x", 1)
	assert.Nil(t, store.Get("file:///missing.md"))
}

func TestDocumentStore_SetLints(t *testing.T) {
	store := NewDocumentStore()
	uri := "file:///a.md"
	store.Open(uri, "the the", 3)

	lints := []lint.Lint{{Rule: "RepeatedWords", Span: token.NewSpan(0, 7)}}
	assert.False(t, store.SetLints(uri, 2, lints), "stale version")
	assert.Empty(t, store.Get(uri).Lints())

	assert.True(t, store.SetLints(uri, 3, lints))
	assert.Equal(t, lints, store.Get(uri).Lints())

	assert.False(t, store.SetLints("file:///b.md", 1, lints))
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///c.md", "c", 1)
	store.Open("file:///a.md", "a", 1)
	store.Open("file:///b.md", "b", 1)

	assert.Equal(t, []string{"file:///a.md", "file:///b.md", "file:///c.md"}, store.List())
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"a\nb\nc", []int{0, 2, 4}},
		{"\n\n\n", []int{0, 1, 2, 3}},
		{"line1\nline2\nline3", []int{0, 6, 12}},
		{"é\nü", []int{0, 2}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, computeLineOffsets([]rune(tt.content)), "content %q", tt.content)
	}
}

func TestDocument_OffsetToPosition(t *testing.T) {
	doc := newDocument("file:///a.md", "line0\nline1\nline2", 1)

	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{Line: 0, Character: 0}},
		{3, Position{Line: 0, Character: 3}},
		{5, Position{Line: 0, Character: 5}},
		{6, Position{Line: 1, Character: 0}},
		{10, Position{Line: 1, Character: 4}},
		{12, Position{Line: 2, Character: 0}},
		{17, Position{Line: 2, Character: 5}},
		// Edge cases
		{-1, Position{Line: 0, Character: 0}},
		{100, Position{Line: 2, Character: 5}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
	}
}

func TestDocument_PositionToOffset(t *testing.T) {
	doc := newDocument("file:///a.md", "line0\nline1\nline2", 1)

	tests := []struct {
		pos      Position
		expected int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 3}, 3},
		{Position{Line: 1, Character: 0}, 6},
		{Position{Line: 1, Character: 4}, 10},
		{Position{Line: 2, Character: 5}, 17},
		// Edge cases
		{Position{Line: 100, Character: 0}, 17},
		{Position{Line: 0, Character: 100}, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.PositionToOffset(tt.pos), "pos %v", tt.pos)
	}
}

func TestDocument_UTF16Positions(t *testing.T) {
	// "😀" is one rune but two UTF-16 code units.
	doc := newDocument("file:///a.md", "a😀 the the\nné", 1)

	tests := []struct {
		offset int
		pos    Position
	}{
		{1, Position{Line: 0, Character: 1}},
		{2, Position{Line: 0, Character: 3}},
		{3, Position{Line: 0, Character: 4}},
		{10, Position{Line: 0, Character: 11}},
		{12, Position{Line: 1, Character: 1}},
		{13, Position{Line: 1, Character: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos), "pos %v", tt.pos)
	}

	// Inside the surrogate pair rounds up.
	assert.Equal(t, 2, doc.PositionToOffset(Position{Line: 0, Character: 2}))

	span := token.NewSpan(3, 10)
	r := doc.SpanToRange(span)
	assert.Equal(t, Range{Start: Position{Character: 4}, End: Position{Character: 11}}, r)
	assert.Equal(t, span, doc.RangeToSpan(r))
	assert.Equal(t, "the the", doc.GetTextInRange(r))
}

func TestDocument_GetLine(t *testing.T) {
	doc := newDocument("file:///a.md", "line0\nlíne1\nline2", 1)

	tests := []struct {
		line     int
		expected string
	}{
		{0, "line0"},
		{1, "líne1"},
		{2, "line2"},
		{-1, ""},
		{100, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.GetLine(tt.line), "line %d", tt.line)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"file:///Users/test/notes.md", "/Users/test/notes.md"},
		{"file:///home/user/my%20notes.txt", "/home/user/my notes.txt"},
		{"/already/a/path.md", "/already/a/path.md"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, URIToPath(tt.uri), "uri %q", tt.uri)
	}
}

func TestPathToURI(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/Users/test/notes.md", "file:///Users/test/notes.md"},
		{"/home/user/my notes.txt", "file:///home/user/my%20notes.txt"},
		{"file:///already/uri.md", "file:///already/uri.md"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PathToURI(tt.path), "path %q", tt.path)
	}
}
