package token

import "fmt"

// Span is a half-open interval [Start, End) of rune offsets.
type Span struct {
	Start int `json:"start" msgpack:"start" yaml:"start"`
	End   int `json:"end" msgpack:"end" yaml:"end"`
}

// NewSpan creates a span. It does not validate its arguments; see IsValid.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of runes in the span, or 0 for an inverted span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no runes.
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

// Contains returns true if the span contains the given rune offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps reports whether two spans share at least one rune.
// Empty spans overlap nothing.
func (s Span) Overlaps(other Span) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// IsValid reports whether 0 <= Start <= End <= length.
func (s Span) IsValid(length int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= length
}

// Less orders spans by start, then end.
func (s Span) Less(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
