package peg

import "fmt"

// Location describes where the input cursor sits: a 0-based absolute
// offset (Cursor) plus its 1-based line/column within the buffer.
type Location struct {
	Line   int
	Column int
	Cursor int
}

// NewLocation builds a Location from its three components.
func NewLocation(line, column, cursor int) Location {
	return Location{Line: line, Column: column, Cursor: cursor}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span is a pair of Locations delimiting a half-open input range.
type Span struct {
	Start Location
	End   Location
}

// NewSpan builds a Span out of a start and end Location.
func NewSpan(start, end Location) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d..%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}
