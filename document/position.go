package document

import "fmt"

// Pos is a line/column position in a document.
// Both Line and Col are 0-indexed. Col is measured in UTF-16 code units
// from the start of the line; end of line is a valid position.
type Pos struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Pos) Compare(other Pos) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Pos) Before(other Pos) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Pos) After(other Pos) bool {
	return p.Compare(other) > 0
}

// Region is a span of document text from Start up to but not including
// End. Start never comes after End in a valid region.
type Region struct {
	Start Pos
	End   Pos
}

// NewRegion builds a region from two positions, swapping them if needed
// so that Start <= End.
func NewRegion(a, b Pos) Region {
	if a.After(b) {
		a, b = b, a
	}
	return Region{Start: a, End: b}
}

// String returns a human-readable representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// IsEmpty returns true if the region covers no text.
func (r Region) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if p falls inside the region, end exclusive.
func (r Region) Contains(p Pos) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}
