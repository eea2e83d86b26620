package analysis

import (
	"github.com/dshills/glint/block"
	"github.com/dshills/glint/span"
)

// Result accumulates the output of one analysis pass: a span map, a
// block index, and the suppress-switch cap for enclosing-block scans.
// Analyzers fill it line by line; Finalize makes it safe to install.
type Result struct {
	spans          *span.Map
	blocks         block.Index
	suppressSwitch int
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{spans: span.NewMap()}
}

// AddSpan appends a span to the given line, growing the map as needed.
// Spans on a line must arrive in ascending column order.
func (r *Result) AddSpan(line int, s span.Span) {
	r.spans.EnsureLines(line + 1)
	r.spans.SetLine(line, append(r.spans.Line(line), s))
}

// AddSpanAt appends a span with the given column and style to line.
func (r *Result) AddSpanAt(line, col int, style span.Style) {
	r.AddSpan(line, span.Span{Col: col, Style: style})
}

// AddNormalIfEmpty places a single normal span on line when nothing
// was emitted for it, keeping the row non-empty.
func (r *Result) AddNormalIfEmpty(line int) {
	r.spans.EnsureLines(line + 1)
	if len(r.spans.Line(line)) == 0 {
		r.spans.SetLine(line, []span.Span{{Col: 0, Style: span.StyleNormal}})
	}
}

// AddBlock records a structural block.
func (r *Result) AddBlock(b block.Block) {
	r.blocks = append(r.blocks, b)
}

// SetSuppressSwitch caps the enclosing-block scan for this result.
// Zero or negative leaves the scan uncapped.
func (r *Result) SetSuppressSwitch(n int) {
	r.suppressSwitch = n
}

// SuppressSwitch returns the enclosing-block scan cap.
func (r *Result) SuppressSwitch() int {
	return r.suppressSwitch
}

// Spans returns the span map built so far.
func (r *Result) Spans() *span.Map {
	return r.spans
}

// Blocks returns the block index built so far.
func (r *Result) Blocks() block.Index {
	return r.blocks
}

// Finalize pads the map to lineCount rows, fills empty rows with a
// normal span, and sorts the blocks by end line when the analyzer
// emitted them out of order. The coordinator calls this before handing
// a result over; analyzers never need to.
func (r *Result) Finalize(lineCount int) {
	r.spans.EnsureLines(lineCount)
	for i := 0; i < r.spans.LineCount(); i++ {
		r.AddNormalIfEmpty(i)
	}
	if !r.blocks.IsSorted() {
		r.blocks.Sort()
	}
}
