package analysis

import (
	"testing"

	"github.com/dshills/glint/block"
)

func TestBlockTrackerPairsNestedBlocks(t *testing.T) {
	res := NewResult()
	var tr BlockTracker

	tr.Open(0, 10)
	tr.Open(1, 4)
	tr.Close(res, 3, 4)
	tr.Close(res, 5, 0)
	tr.Finish(res)

	want := block.Index{
		{StartLine: 1, StartCol: 4, EndLine: 3, EndCol: 4},
		{StartLine: 0, StartCol: 10, EndLine: 5, EndCol: 0},
	}
	got := res.Blocks()
	if len(got) != len(want) {
		t.Fatalf("blocks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !got.IsSorted() {
		t.Error("tracker emitted an unsorted index")
	}
}

func TestBlockTrackerSkipsSingleLinePairs(t *testing.T) {
	res := NewResult()
	var tr BlockTracker

	tr.Open(2, 8)
	tr.Close(res, 2, 9)
	tr.Finish(res)

	if len(res.Blocks()) != 0 {
		t.Errorf("single-line pair was indexed: %v", res.Blocks())
	}
}

func TestBlockTrackerIgnoresUnmatchedClose(t *testing.T) {
	res := NewResult()
	var tr BlockTracker

	tr.Close(res, 0, 0)
	tr.Open(1, 0)
	tr.Close(res, 4, 0)
	tr.Finish(res)

	if len(res.Blocks()) != 1 {
		t.Fatalf("blocks = %v, want exactly the matched pair", res.Blocks())
	}
}

func TestBlockTrackerSuppressSwitchCountsSiblings(t *testing.T) {
	res := NewResult()
	var tr BlockTracker

	// Three sibling blocks inside one top-level block.
	tr.Open(0, 0)
	for line := 1; line <= 3; line++ {
		tr.Open(line*2, 0)
		tr.Close(res, line*2+1, 0)
	}
	tr.Close(res, 9, 0)
	tr.Finish(res)

	// One top-level open plus three nested opens before the stack
	// empties again.
	if got := res.SuppressSwitch(); got != 4+10 {
		t.Errorf("suppress switch = %d, want %d", got, 4+10)
	}
}

func TestBlockTrackerDepth(t *testing.T) {
	var tr BlockTracker
	res := NewResult()

	if tr.Depth() != 0 {
		t.Fatalf("fresh tracker depth = %d", tr.Depth())
	}
	tr.Open(0, 0)
	tr.Open(1, 0)
	if tr.Depth() != 2 {
		t.Errorf("depth = %d, want 2", tr.Depth())
	}
	tr.Close(res, 2, 0)
	if tr.Depth() != 1 {
		t.Errorf("depth after close = %d, want 1", tr.Depth())
	}
}
