package document

import (
	"errors"
	"fmt"

	"github.com/lukasmwerner/harper/pkg/token"
)

// Sentinel errors returned by Document accessors.
var (
	// ErrInvalidSpan is returned when a span is inverted or out of bounds.
	ErrInvalidSpan = errors.New("invalid span")
	// ErrOutOfRange is returned when a token index is outside [0, TokenCount()).
	ErrOutOfRange = errors.New("token index out of range")
)

// SpanError describes a span that does not fit the document.
type SpanError struct {
	Span   token.Span
	Length int
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("invalid span %s for document of length %d", e.Span, e.Length)
}

// Unwrap allows errors.Is(err, ErrInvalidSpan).
func (e *SpanError) Unwrap() error {
	return ErrInvalidSpan
}

// IndexError describes a token index outside the token sequence.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("token index %d out of range [0, %d)", e.Index, e.Count)
}

// Unwrap allows errors.Is(err, ErrOutOfRange).
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
