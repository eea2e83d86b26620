// Package cursor tracks a selection over a document and keeps it
// consistent across edits.
package cursor

import (
	"fmt"

	"github.com/dshills/glint/document"
)

// Cursor is a selection over a document: an anchor (Left) and an
// active position (Right) kept in document order. Equal endpoints form
// a caret. Attached to a document as a watcher, the cursor follows
// every mutation using the same delta arithmetic span columns use, so
// hosts never have to fix it up after an edit.
//
// A cursor never rests between the two halves of a surrogate pair:
// positions that would land there snap forward one column.
type Cursor struct {
	doc      *document.Document
	left     document.Pos
	right    document.Pos
	sticky   int
	onChange func(*Cursor)
}

// New creates a caret at the document origin.
func New(doc *document.Document) *Cursor {
	return &Cursor{doc: doc}
}

// Left returns the selection anchor.
func (c *Cursor) Left() document.Pos {
	return c.left
}

// Right returns the active selection end.
func (c *Cursor) Right() document.Pos {
	return c.right
}

// Region returns the selected region.
func (c *Cursor) Region() document.Region {
	return document.Region{Start: c.left, End: c.right}
}

// IsSelected reports whether the endpoints differ.
func (c *Cursor) IsSelected() bool {
	return c.left != c.right
}

// OnChange registers fn to run after every cursor movement, including
// edit-driven adjustments. Only one hook is kept.
func (c *Cursor) OnChange(fn func(*Cursor)) {
	c.onChange = fn
}

// Set collapses the selection to a caret at (line, col).
func (c *Cursor) Set(line, col int) error {
	if err := c.check(line, col); err != nil {
		return err
	}
	p := c.snap(document.Pos{Line: line, Col: col})
	c.place(p, p)
	c.sticky = p.Col
	return nil
}

// SetRegion selects from the start position to the end position. The
// start must not come after the end.
func (c *Cursor) SetRegion(startLine, startCol, endLine, endCol int) error {
	if err := c.check(startLine, startCol); err != nil {
		return err
	}
	if err := c.check(endLine, endCol); err != nil {
		return err
	}
	start := document.Pos{Line: startLine, Col: startCol}
	end := document.Pos{Line: endLine, Col: endCol}
	if start.After(end) {
		return fmt.Errorf("range %s-%s: %w", start, end, document.ErrRangeInvalid)
	}
	c.place(c.snap(start), c.snap(end))
	c.sticky = c.right.Col
	return nil
}

// BeforeChange implements document.Watcher.
func (c *Cursor) BeforeChange(*document.Document) {}

// AfterInsert shifts the selection to follow inserted text.
func (c *Cursor) AfterInsert(_ *document.Document, r document.Region, _ string) {
	c.place(c.snap(adjustInsert(c.left, r)), c.snap(adjustInsert(c.right, r)))
	c.sticky = c.right.Col
}

// AfterDelete shifts the selection to follow deleted text.
func (c *Cursor) AfterDelete(_ *document.Document, r document.Region, _ string) {
	c.place(c.snap(adjustDelete(c.left, r)), c.snap(adjustDelete(c.right, r)))
	c.sticky = c.right.Col
}

// MoveRight steps one grapheme cluster right, or collapses an active
// selection to its right edge.
func (c *Cursor) MoveRight() {
	if c.IsSelected() {
		c.place(c.right, c.right)
		c.sticky = c.right.Col
		return
	}
	p := c.right
	length, err := c.doc.LineLength(p.Line)
	if err != nil {
		return
	}
	if p.Col >= length {
		if p.Line+1 >= c.doc.LineCount() {
			return
		}
		p = document.Pos{Line: p.Line + 1, Col: 0}
	} else {
		text, err := c.doc.Line(p.Line)
		if err != nil {
			return
		}
		p.Col = clusterEnd(text, p.Col)
	}
	c.place(p, p)
	c.sticky = p.Col
}

// MoveLeft steps one grapheme cluster left, or collapses an active
// selection to its left edge.
func (c *Cursor) MoveLeft() {
	if c.IsSelected() {
		c.place(c.left, c.left)
		c.sticky = c.left.Col
		return
	}
	p := c.left
	if p.Col == 0 {
		if p.Line == 0 {
			return
		}
		length, err := c.doc.LineLength(p.Line - 1)
		if err != nil {
			return
		}
		p = document.Pos{Line: p.Line - 1, Col: length}
	} else {
		text, err := c.doc.Line(p.Line)
		if err != nil {
			return
		}
		p.Col = clusterStart(text, p.Col)
	}
	c.place(p, p)
	c.sticky = p.Col
}

// MoveUp moves the caret one line up, keeping the sticky column.
func (c *Cursor) MoveUp() {
	c.moveVert(-1)
}

// MoveDown moves the caret one line down, keeping the sticky column.
func (c *Cursor) MoveDown() {
	c.moveVert(1)
}

// Home moves the caret to column 0 of the active line.
func (c *Cursor) Home() {
	p := document.Pos{Line: c.right.Line}
	c.place(p, p)
	c.sticky = 0
}

// End moves the caret past the last column of the active line.
func (c *Cursor) End() {
	length, err := c.doc.LineLength(c.right.Line)
	if err != nil {
		return
	}
	p := document.Pos{Line: c.right.Line, Col: length}
	c.place(p, p)
	c.sticky = length
}

// moveVert steps the caret dir lines vertically. The target column is
// the sticky column remembered from the last horizontal move, clamped
// to the target line's length.
func (c *Cursor) moveVert(dir int) {
	base := c.right
	if dir < 0 {
		base = c.left
	}
	line := base.Line + dir
	if line < 0 {
		line = 0
	}
	if max := c.doc.LineCount() - 1; line > max {
		line = max
	}
	length, err := c.doc.LineLength(line)
	if err != nil {
		return
	}
	col := c.sticky
	if col > length {
		col = length
	}
	p := c.snap(document.Pos{Line: line, Col: col})
	c.place(p, p)
}

// place installs new endpoints and fires the change hook when they
// actually moved.
func (c *Cursor) place(left, right document.Pos) {
	if left == c.left && right == c.right {
		return
	}
	c.left, c.right = left, right
	if c.onChange != nil {
		c.onChange(c)
	}
}

func (c *Cursor) check(line, col int) error {
	length, err := c.doc.LineLength(line)
	if err != nil {
		return err
	}
	if col < 0 || col > length {
		return fmt.Errorf("position (%d:%d): %w", line, col, document.ErrPosOutOfRange)
	}
	return nil
}

// snap moves a position forward one column when it would otherwise sit
// between the two halves of a surrogate pair.
func (c *Cursor) snap(p document.Pos) document.Pos {
	if p.Col <= 0 {
		return p
	}
	length, err := c.doc.LineLength(p.Line)
	if err != nil || p.Col >= length {
		return p
	}
	prev, errPrev := c.doc.CharAt(p.Line, p.Col-1)
	cur, errCur := c.doc.CharAt(p.Line, p.Col)
	if errPrev == nil && errCur == nil &&
		document.IsHighSurrogate(prev) && document.IsLowSurrogate(cur) {
		p.Col++
	}
	return p
}

// adjustInsert maps a position through an insertion using the same
// shift rules the span map applies to columns. A position exactly at
// the insertion point is pushed to the end of the inserted text.
func adjustInsert(p document.Pos, r document.Region) document.Pos {
	switch {
	case p.Line < r.Start.Line || (p.Line == r.Start.Line && p.Col < r.Start.Col):
		return p
	case p.Line == r.Start.Line:
		return document.Pos{Line: r.End.Line, Col: p.Col - r.Start.Col + r.End.Col}
	default:
		return document.Pos{Line: p.Line + r.End.Line - r.Start.Line, Col: p.Col}
	}
}

// adjustDelete maps a position through a deletion: positions inside
// the removed region collapse to its start, later ones shift back.
func adjustDelete(p document.Pos, r document.Region) document.Pos {
	switch {
	case p.Before(r.Start) || p == r.Start:
		return p
	case p.Before(r.End):
		return r.Start
	case p.Line == r.End.Line:
		return document.Pos{Line: r.Start.Line, Col: p.Col - r.End.Col + r.Start.Col}
	default:
		return document.Pos{Line: p.Line - (r.End.Line - r.Start.Line), Col: p.Col}
	}
}
