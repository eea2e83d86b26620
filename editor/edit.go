package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/glint/document"
)

// InsertText inserts text at the cursor the way typing does: an
// active selection is replaced first, a lone line break picks up
// auto-indent, and the completion notifier fires when the inserted
// text extends a word. The cursor ends up after the inserted text.
func (e *Editor) InsertText(text string) (document.Region, error) {
	if e.cur.IsSelected() {
		done := e.doc.BatchScope()
		defer done()
		if _, err := e.DeleteSelection(); err != nil {
			return document.Region{}, err
		}
	}

	pos := e.cur.Right()
	if e.autoIndent && text == "\n" {
		text = e.lineBreak(pos)
	}

	r, err := e.doc.Insert(pos.Line, pos.Col, text)
	if err != nil {
		return document.Region{}, err
	}
	e.notifyCompletion(r, text)
	return r, nil
}

// Insert inserts text at a position, bypassing the cursor and typing
// conveniences.
func (e *Editor) Insert(line, col int, text string) (document.Region, error) {
	return e.doc.Insert(line, col, text)
}

// Delete removes the text covered by a region and returns it.
func (e *Editor) Delete(startLine, startCol, endLine, endCol int) (string, error) {
	return e.doc.Delete(startLine, startCol, endLine, endCol)
}

// Replace swaps the text covered by a region, undoing as a single
// unit.
func (e *Editor) Replace(startLine, startCol, endLine, endCol int, text string) (document.Region, error) {
	return e.doc.Replace(startLine, startCol, endLine, endCol, text)
}

// DeleteSelection removes the selected text and returns it. Without a
// selection it returns the empty string.
func (e *Editor) DeleteSelection() (string, error) {
	if !e.cur.IsSelected() {
		return "", nil
	}
	r := e.cur.Region()
	return e.doc.Delete(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
}

// Backspace removes the selection, or the grapheme cluster before the
// caret, joining lines when the caret sits at a line start. At the
// document origin it is a no-op.
func (e *Editor) Backspace() error {
	if e.cur.IsSelected() {
		_, err := e.DeleteSelection()
		return err
	}
	end := e.cur.Right()
	e.cur.MoveLeft()
	start := e.cur.Right()
	if start == end {
		return nil
	}
	_, err := e.doc.Delete(start.Line, start.Col, end.Line, end.Col)
	return err
}

// BeginBatchEdit opens a batch-edit scope. Scopes nest; mutations
// made while any scope is open undo as one unit.
func (e *Editor) BeginBatchEdit() {
	e.doc.BeginBatchEdit()
}

// EndBatchEdit closes the innermost batch-edit scope.
func (e *Editor) EndBatchEdit() error {
	return e.doc.EndBatchEdit()
}

// BatchScope opens a batch-edit scope and returns its closer.
func (e *Editor) BatchScope() func() {
	return e.doc.BatchScope()
}

// Undo reverts the newest undo unit. It reports whether anything was
// undone; an empty stack is not an error.
func (e *Editor) Undo() (bool, error) {
	return e.hist.Undo(e.doc)
}

// Redo reapplies the newest undone unit.
func (e *Editor) Redo() (bool, error) {
	return e.hist.Redo(e.doc)
}

// CanUndo reports whether an undo unit is available.
func (e *Editor) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo unit is available.
func (e *Editor) CanRedo() bool {
	return e.hist.CanRedo()
}

// SetUndoEnabled turns undo recording on or off. Disabling clears
// both stacks.
func (e *Editor) SetUndoEnabled(on bool) {
	e.hist.SetEnabled(on)
}

// UndoEnabled reports whether undo recording is on.
func (e *Editor) UndoEnabled() bool {
	return e.hist.Enabled()
}

// lineBreak returns the newline to insert at pos under auto-indent:
// the new line keeps the indentation of the text left of the break
// plus the language's indent advance for it.
func (e *Editor) lineBreak(pos document.Pos) string {
	before, err := e.doc.SubContent(pos.Line, 0, pos.Line, pos.Col)
	if err != nil {
		return "\n"
	}
	cols := leadingIndent(before, e.tabWidth) + e.lang.IndentAdvance(before)
	if cols <= 0 {
		return "\n"
	}
	return "\n" + indentText(cols, e.tabWidth, e.lang.UseTab())
}

// leadingIndent measures the whitespace prefix of a line in columns,
// expanding tabs to the next tab stop.
func leadingIndent(s string, tabWidth int) int {
	cols := 0
	for _, r := range s {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth - cols%tabWidth
		default:
			return cols
		}
	}
	return cols
}

// indentText renders cols columns of indentation as tabs or spaces.
func indentText(cols, tabWidth int, useTab bool) string {
	if !useTab {
		return strings.Repeat(" ", cols)
	}
	return strings.Repeat("\t", cols/tabWidth) + strings.Repeat(" ", cols%tabWidth)
}

// notifyCompletion reports the word ending at the cursor after a
// single-line typed insert whose last character can extend a
// completion query.
func (e *Editor) notifyCompletion(r document.Region, text string) {
	if e.notifier == nil || text == "" || r.Start.Line != r.End.Line {
		return
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	if !e.lang.IsAutoCompleteChar(last) {
		return
	}
	if prefix := e.completionPrefix(); prefix != "" {
		e.notifier(prefix)
	}
}

// completionPrefix walks left from the cursor over characters the
// language accepts in a completion query.
func (e *Editor) completionPrefix() string {
	pos := e.cur.Right()
	line, err := e.doc.Line(pos.Line)
	if err != nil {
		return ""
	}
	runes := []rune(line)

	// Locate the rune ending at the cursor's UTF-16 column.
	col, end := 0, 0
	for end < len(runes) && col < pos.Col {
		if runes[end] > 0xFFFF {
			col += 2
		} else {
			col++
		}
		end++
	}

	start := end
	for start > 0 && e.lang.IsAutoCompleteChar(runes[start-1]) {
		start--
	}
	return string(runes[start:end])
}
