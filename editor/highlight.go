package editor

import (
	"context"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/block"
	"github.com/dshills/glint/document"
)

// Completions returns the channel on which finished background
// analysis passes arrive. Feed every received completion to Apply on
// the editing goroutine.
func (e *Editor) Completions() <-chan analysis.Completion {
	return e.coord.Completions()
}

// Apply resolves a completion against the live document. On a version
// and identity match the live span map and block index are swapped in
// and the cursor's enclosing block recomputed; stale results are
// discarded. A failed pass keeps the previous highlighting state.
func (e *Editor) Apply(comp analysis.Completion) bool {
	matched := e.coord.Apply(comp, e.doc)
	if comp.Err != nil {
		e.log.Warn("analysis failed: %v", comp.Err)
		return false
	}
	if !matched {
		return false
	}
	e.live = comp.Result
	e.refreshCurrent()
	return true
}

// AnalyzeNow runs one analysis pass synchronously on the calling
// goroutine and applies it. Useful right after construction or
// SetText, before the debounced background pass lands.
func (e *Editor) AnalyzeNow(ctx context.Context) error {
	comp := e.coord.RunOnce(ctx, e.doc.Snapshot())
	if comp.Err != nil {
		return comp.Err
	}
	e.Apply(comp)
	return nil
}

// EnclosingBlock returns the tightest block containing line.
func (e *Editor) EnclosingBlock(line int) (block.Block, bool) {
	blocks := e.live.Blocks()
	i := blocks.Enclosing(line, e.suppress())
	if i < 0 {
		return block.Block{}, false
	}
	return blocks[i], true
}

// CurrentBlock returns the block enclosing the cursor, recomputed on
// every cursor move and analysis apply. Between an edit and the next
// completed pass it reflects the pre-edit block index.
func (e *Editor) CurrentBlock() (block.Block, bool) {
	blocks := e.live.Blocks()
	if e.current < 0 || e.current >= len(blocks) {
		return block.Block{}, false
	}
	return blocks[e.current], true
}

// suppress returns the cap for enclosing-block scans: the configured
// override when set, otherwise the analyzer's computed value.
func (e *Editor) suppress() int {
	if e.suppressSwitch > 0 {
		return e.suppressSwitch
	}
	return e.live.SuppressSwitch()
}

// refreshCurrent recomputes the cursor's enclosing block.
func (e *Editor) refreshCurrent() {
	e.current = e.live.Blocks().Enclosing(e.cur.Right().Line, e.suppress())
}

// cursorMoved runs after every cursor change.
func (e *Editor) cursorMoved() {
	e.refreshCurrent()
	if e.onCursor != nil {
		e.onCursor()
	}
}

// patchInsert shifts the live span map through an insertion. A map
// that does not match the pre-edit line count is left alone; the next
// full analysis replaces it.
func (e *Editor) patchInsert(r document.Region) {
	m := e.live.Spans()
	delta := r.End.Line - r.Start.Line
	if !m.PreparedForInsert(e.doc.LineCount(), delta) {
		return
	}
	if delta == 0 {
		m.InsertSingleLine(r.Start.Line, r.Start.Col, r.End.Col)
	} else {
		m.InsertMultiLine(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
	}
}

// patchDelete shifts the live span map through a deletion.
func (e *Editor) patchDelete(r document.Region) {
	m := e.live.Spans()
	delta := r.End.Line - r.Start.Line
	if !m.PreparedForDelete(e.doc.LineCount(), delta) {
		return
	}
	if delta == 0 {
		m.DeleteSingleLine(r.Start.Line, r.Start.Col, r.End.Col)
	} else {
		m.DeleteMultiLine(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
	}
}
