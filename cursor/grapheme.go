package cursor

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/glint/document"
)

// clusterEnd returns the column just past the grapheme cluster covering
// col, measured in UTF-16 units. A col at or past the end of the line
// is returned as the line length.
func clusterEnd(line string, col int) int {
	w := 0
	state := -1
	for s := line; len(s) > 0; {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		next := w + document.UTF16Len(cluster)
		if next > col {
			return next
		}
		w = next
		s = rest
		state = newState
	}
	return w
}

// clusterStart returns the last grapheme boundary strictly before col,
// measured in UTF-16 units.
func clusterStart(line string, col int) int {
	if col <= 0 {
		return 0
	}
	b := 0
	state := -1
	for s := line; len(s) > 0; {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		next := b + document.UTF16Len(cluster)
		if next >= col {
			return b
		}
		b = next
		s = rest
		state = newState
	}
	return b
}
