package token

import "fmt"

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Span represents a half-open byte range [Start.Offset, End.Offset) in the source.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Covers returns true if inner lies entirely within s.
func (s Span) Covers(inner Span) bool {
	return inner.Start.Offset >= s.Start.Offset && inner.End.Offset <= s.End.Offset
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.End.Offset >= s.Start.Offset
}

// Text returns the slice of src covered by the span.
func (s Span) Text(src string) string {
	if !s.IsValid() || s.End.Offset > len(src) {
		return ""
	}
	return src[s.Start.Offset:s.End.Offset]
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	switch {
	case !a.IsValid():
		return b
	case !b.IsValid():
		return a
	}
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}
