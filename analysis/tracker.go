package analysis

import "github.com/dshills/glint/block"

// BlockTracker pairs block openings with their closings as an analyzer
// walks a document top to bottom. Closings arrive in ascending line
// order, so the emitted blocks land in the index already sorted by end
// line. The tracker also derives the suppress-switch cap from the
// largest run of sibling blocks it saw at any nesting level.
type BlockTracker struct {
	stack      []block.Block
	currSwitch int
	maxSwitch  int
}

// Open records a block start at line:col.
func (t *BlockTracker) Open(line, col int) {
	if len(t.stack) == 0 {
		if t.currSwitch > t.maxSwitch {
			t.maxSwitch = t.currSwitch
		}
		t.currSwitch = 0
	}
	t.currSwitch++
	t.stack = append(t.stack, block.Block{StartLine: line, StartCol: col})
}

// Close records a block end at line:col and emits the pair into res
// when it spans more than one line. Unmatched closings are ignored.
func (t *BlockTracker) Close(res *Result, line, col int) {
	if len(t.stack) == 0 {
		return
	}
	b := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	b.EndLine, b.EndCol = line, col
	if b.StartLine != b.EndLine {
		res.AddBlock(b)
	}
}

// Depth returns the number of currently open blocks.
func (t *BlockTracker) Depth() int {
	return len(t.stack)
}

// Finish installs the computed suppress-switch cap on res. Call it
// once, after the last line.
func (t *BlockTracker) Finish(res *Result) {
	if t.currSwitch > t.maxSwitch {
		t.maxSwitch = t.currSwitch
	}
	res.SetSuppressSwitch(t.maxSwitch + 10)
}
