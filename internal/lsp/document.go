package lsp

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"unicode/utf16"

	"fortio.org/safecast"

	"github.com/lukasmwerner/harper/pkg/lint"
	"github.com/lukasmwerner/harper/pkg/token"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/file.md)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Rune offsets of line starts

	runes []rune
	lints []lint.Lint // Lints from the last diagnostics run
}

func newDocument(uri, content string, version int) *Document {
	runes := []rune(content)
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(runes),
		runes:   runes,
	}
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content. Documents are immutable once
// stored so readers holding the old one are unaffected.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; ok {
		s.documents[uri] = newDocument(uri, content, version)
	}
}

// SetLints records the lints computed for a document version. Lints for a
// stale version are dropped.
func (s *DocumentStore) SetLints(uri string, version int, lints []lint.Lint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[uri]
	if !ok || doc.Version != version {
		return false
	}
	doc.lints = lints
	return true
}

// List returns all open document URIs, sorted.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// computeLineOffsets calculates rune offsets for each line start.
func computeLineOffsets(runes []rune) []int {
	offsets := []int{0} // First line starts at offset 0

	for i, r := range runes {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// Len returns the document length in runes.
func (d *Document) Len() int {
	return len(d.runes)
}

// Lints returns the lints from the last diagnostics run.
func (d *Document) Lints() []lint.Lint {
	return d.lints
}

// lineOf returns the line containing a rune offset.
func (d *Document) lineOf(offset int) int {
	return sort.Search(len(d.Lines), func(i int) bool { return d.Lines[i] > offset }) - 1
}

// OffsetToPosition converts a rune offset to a Position. Characters are
// counted in UTF-16 code units as the protocol requires.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	offset = max(0, min(offset, len(d.runes)))
	line := d.lineOf(offset)

	units := 0
	for _, r := range d.runes[d.Lines[line]:offset] {
		units += utf16Len(r)
	}

	l, err := safecast.Conv[uint32](line)
	if err != nil {
		return Position{}
	}
	c, err := safecast.Conv[uint32](units)
	if err != nil {
		return Position{Line: l}
	}
	return Position{Line: l, Character: c}
}

// PositionToOffset converts a Position to a rune offset. Positions past the
// end of a line clamp to the line end; positions in the middle of a
// surrogate pair round up to the next rune.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.runes)
	}

	end := len(d.runes)
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1 // Exclude newline
	}

	offset := d.Lines[line]
	want := int(pos.Character)
	for units := 0; offset < end && units < want; offset++ {
		units += utf16Len(d.runes[offset])
	}
	return offset
}

// SpanToRange converts a rune span to a protocol range.
func (d *Document) SpanToRange(span token.Span) Range {
	return Range{
		Start: d.OffsetToPosition(span.Start),
		End:   d.OffsetToPosition(span.End),
	}
}

// RangeToSpan converts a protocol range to a rune span.
func (d *Document) RangeToSpan(r Range) token.Span {
	return token.NewSpan(d.PositionToOffset(r.Start), d.PositionToOffset(r.End))
}

// GetLine returns the content of a specific line.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.runes)

	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1 // Exclude newline
		if end < start {
			end = start
		}
	}

	return string(d.runes[start:end])
}

// GetTextInRange returns the text within a range.
func (d *Document) GetTextInRange(r Range) string {
	start := d.PositionToOffset(r.Start)
	end := d.PositionToOffset(r.End)
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	path := uri[len(prefix):]
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}
	return path
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + (&url.URL{Path: path}).EscapedPath()
}
