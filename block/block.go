// Package block indexes structural code regions (matched bracket pairs)
// for current-block highlighting.
package block

import (
	"fmt"
	"math"
	"sort"
)

// Block is one structural region, such as a brace-delimited scope.
// Lines and columns are 0-indexed document coordinates.
type Block struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a human-readable representation of the block.
func (b Block) String() string {
	return fmt.Sprintf("[(%d:%d)-(%d:%d)]", b.StartLine, b.StartCol, b.EndLine, b.EndCol)
}

// ContainsLine reports whether line falls inside the block, both ends
// inclusive.
func (b Block) ContainsLine(line int) bool {
	return b.StartLine <= line && line <= b.EndLine
}

// Index is a collection of blocks sorted ascending by EndLine, the
// order that makes the queries below binary-searchable. Analyzers
// produce a fresh Index per pass; it is never patched incrementally.
type Index []Block

// Sort orders the index ascending by EndLine, keeping the analyzer's
// emit order for equal end lines.
func (x Index) Sort() {
	sort.SliceStable(x, func(i, j int) bool {
		return x[i].EndLine < x[j].EndLine
	})
}

// IsSorted reports whether the index is ordered ascending by EndLine.
func (x Index) IsSorted() bool {
	return sort.SliceIsSorted(x, func(i, j int) bool {
		return x[i].EndLine < x[j].EndLine
	})
}

// FirstEnding returns the index of the first block whose EndLine is
// strictly greater than line: the first block that can still be visible
// scanning forward from line. When every block ends at or before line,
// the last index is returned; -1 when the index is empty.
func (x Index) FirstEnding(line int) int {
	if len(x) == 0 {
		return -1
	}
	lo, hi := 0, len(x)
	for lo < hi {
		mid := (lo + hi) / 2
		if x[mid].EndLine > line {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo == len(x) {
		lo = len(x) - 1
	}
	return lo
}

// Enclosing returns the index of the tightest block containing line:
// among blocks with StartLine <= line <= EndLine, the one spanning the
// fewest lines. The scan starts at FirstEnding(line) and gives up once
// suppressSwitch non-enclosing blocks have been seen after a candidate,
// bounding the cost on degenerate inputs with huge block counts. A
// suppressSwitch <= 0 lifts the cap. Returns -1 when nothing encloses
// line.
func (x Index) Enclosing(line, suppressSwitch int) int {
	start := x.FirstEnding(line)
	if start < 0 {
		return -1
	}
	if suppressSwitch <= 0 {
		suppressSwitch = math.MaxInt
	}
	minDis := math.MaxInt
	found := -1
	invalid := 0
	for i := start; i < len(x); i++ {
		if x[i].ContainsLine(line) {
			if dis := x[i].EndLine - x[i].StartLine; dis < minDis {
				minDis = dis
				found = i
			}
		} else if found != -1 {
			invalid++
			if invalid >= suppressSwitch {
				break
			}
		}
	}
	return found
}
