package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Document is a mutable, line-oriented text buffer. It always contains
// at least one line; the empty document is a single empty line.
//
// Each line is stored as a slice of UTF-16 code units. Stored line
// slices are never mutated in place: every edit builds replacement
// slices, so snapshots can share line storage with the live document.
//
// Document is not safe for concurrent use; see the package comment.
type Document struct {
	lines    [][]uint16
	version  uint64
	identity uuid.UUID
	watchers []Watcher
	batch    int
	batchID  uint64
}

// New creates a document holding text. Line endings are normalized to
// LF; the empty string yields a single empty line.
func New(text string) *Document {
	return &Document{
		lines:    splitLines(text),
		identity: uuid.New(),
	}
}

// Version returns a counter bumped by every mutation.
func (d *Document) Version() uint64 {
	return d.version
}

// Identity uniquely identifies this document instance. Loading new
// content means constructing a new Document, so a changed identity
// tells asynchronous consumers their captured text is gone for good.
func (d *Document) Identity() uuid.UUID {
	return d.identity
}

// Watch subscribes w to mutation notifications. Watchers are notified
// in subscription order.
func (d *Document) Watch(w Watcher) {
	d.watchers = append(d.watchers, w)
}

// Unwatch removes a previously subscribed watcher.
func (d *Document) Unwatch(w Watcher) {
	for i, x := range d.watchers {
		if x == w {
			d.watchers = append(d.watchers[:i], d.watchers[i+1:]...)
			return
		}
	}
}

// LineCount returns the number of lines, always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineLength returns the length of a line in UTF-16 code units.
func (d *Document) LineLength(line int) (int, error) {
	if line < 0 || line >= len(d.lines) {
		return 0, fmt.Errorf("line %d: %w", line, ErrPosOutOfRange)
	}
	return len(d.lines[line]), nil
}

// CharAt returns the UTF-16 code unit at (line, col). Unlike cursor
// positions, col must address an existing code unit, so end of line is
// out of range here.
func (d *Document) CharAt(line, col int) (uint16, error) {
	if line < 0 || line >= len(d.lines) || col < 0 || col >= len(d.lines[line]) {
		return 0, fmt.Errorf("char at (%d:%d): %w", line, col, ErrPosOutOfRange)
	}
	return d.lines[line][col], nil
}

// Line returns the text of one line, without its line break.
func (d *Document) Line(line int) (string, error) {
	if line < 0 || line >= len(d.lines) {
		return "", fmt.Errorf("line %d: %w", line, ErrPosOutOfRange)
	}
	return decodeUTF16(d.lines[line]), nil
}

// Text returns the full document text with LF line breaks.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, ln := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(decodeUTF16(ln))
	}
	return sb.String()
}

// SubContent returns the text covered by the given region.
func (d *Document) SubContent(startLine, startCol, endLine, endCol int) (string, error) {
	if err := d.checkRegion(startLine, startCol, endLine, endCol); err != nil {
		return "", err
	}
	return d.subContent(startLine, startCol, endLine, endCol), nil
}

// Insert splices text into the document at (line, col). It returns the
// affected region, whose end is the position just past the inserted
// text. Inserting the empty string is a no-op: no version bump, no
// notifications.
func (d *Document) Insert(line, col int, text string) (Region, error) {
	if err := d.checkPos(line, col); err != nil {
		return Region{}, err
	}
	start := Pos{Line: line, Col: col}
	if text == "" {
		return Region{Start: start, End: start}, nil
	}
	text = normalizeLineEndings(text)
	segs := splitLines(text)

	d.notifyBefore()

	var end Pos
	if len(segs) == 1 {
		old := d.lines[line]
		repl := make([]uint16, 0, len(old)+len(segs[0]))
		repl = append(repl, old[:col]...)
		repl = append(repl, segs[0]...)
		repl = append(repl, old[col:]...)
		d.lines[line] = repl
		end = Pos{Line: line, Col: col + len(segs[0])}
	} else {
		old := d.lines[line]
		first := concatUnits(old[:col], segs[0])
		last := concatUnits(segs[len(segs)-1], old[col:])

		repl := make([][]uint16, 0, len(d.lines)+len(segs)-1)
		repl = append(repl, d.lines[:line]...)
		repl = append(repl, first)
		repl = append(repl, segs[1:len(segs)-1]...)
		repl = append(repl, last)
		repl = append(repl, d.lines[line+1:]...)
		d.lines = repl
		end = Pos{Line: line + len(segs) - 1, Col: len(segs[len(segs)-1])}
	}

	d.version++
	r := Region{Start: start, End: end}
	d.notifyInsert(r, text)
	return r, nil
}

// Delete removes the text covered by the given region and returns it.
// Deleting an empty region is a no-op: no version bump, no
// notifications.
func (d *Document) Delete(startLine, startCol, endLine, endCol int) (string, error) {
	if err := d.checkRegion(startLine, startCol, endLine, endCol); err != nil {
		return "", err
	}
	if startLine == endLine && startCol == endCol {
		return "", nil
	}
	deleted := d.subContent(startLine, startCol, endLine, endCol)

	d.notifyBefore()

	if startLine == endLine {
		old := d.lines[startLine]
		d.lines[startLine] = concatUnits(old[:startCol], old[endCol:])
	} else {
		merged := concatUnits(d.lines[startLine][:startCol], d.lines[endLine][endCol:])
		repl := make([][]uint16, 0, len(d.lines)-(endLine-startLine))
		repl = append(repl, d.lines[:startLine]...)
		repl = append(repl, merged)
		repl = append(repl, d.lines[endLine+1:]...)
		d.lines = repl
	}

	d.version++
	r := Region{
		Start: Pos{Line: startLine, Col: startCol},
		End:   Pos{Line: endLine, Col: endCol},
	}
	d.notifyDelete(r, deleted)
	return deleted, nil
}

// Replace deletes the given region and inserts text in its place,
// defined as delete followed by insert inside one batch-edit scope so
// the pair undoes as a unit. It returns the region of the inserted
// text.
func (d *Document) Replace(startLine, startCol, endLine, endCol int, text string) (Region, error) {
	if err := d.checkRegion(startLine, startCol, endLine, endCol); err != nil {
		return Region{}, err
	}
	done := d.BatchScope()
	defer done()
	if _, err := d.Delete(startLine, startCol, endLine, endCol); err != nil {
		return Region{}, err
	}
	return d.Insert(startLine, startCol, text)
}

// BeginBatchEdit opens a batch-edit scope. Scopes nest; mutations made
// while any scope is open coalesce into a single undo unit.
func (d *Document) BeginBatchEdit() {
	if d.batch == 0 {
		d.batchID++
	}
	d.batch++
}

// EndBatchEdit closes the innermost batch-edit scope.
func (d *Document) EndBatchEdit() error {
	if d.batch == 0 {
		return ErrBatchUnbalanced
	}
	d.batch--
	return nil
}

// BatchScope opens a batch-edit scope and returns the function that
// closes it, for use with defer.
func (d *Document) BatchScope() func() {
	d.BeginBatchEdit()
	return func() { _ = d.EndBatchEdit() }
}

// InBatchEdit reports whether a batch-edit scope is open.
func (d *Document) InBatchEdit() bool {
	return d.batch > 0
}

// BatchID identifies the current outermost batch-edit scope. It is only
// meaningful while InBatchEdit reports true; consumers use it to tell
// consecutive scopes apart.
func (d *Document) BatchID() uint64 {
	return d.batchID
}

func (d *Document) checkPos(line, col int) error {
	if line < 0 || line >= len(d.lines) || col < 0 || col > len(d.lines[line]) {
		return fmt.Errorf("position (%d:%d): %w", line, col, ErrPosOutOfRange)
	}
	return nil
}

func (d *Document) checkRegion(startLine, startCol, endLine, endCol int) error {
	if err := d.checkPos(startLine, startCol); err != nil {
		return err
	}
	if err := d.checkPos(endLine, endCol); err != nil {
		return err
	}
	start := Pos{Line: startLine, Col: startCol}
	end := Pos{Line: endLine, Col: endCol}
	if start.After(end) {
		return fmt.Errorf("range %s-%s: %w", start, end, ErrRangeInvalid)
	}
	return nil
}

func (d *Document) subContent(startLine, startCol, endLine, endCol int) string {
	if startLine == endLine {
		return decodeUTF16(d.lines[startLine][startCol:endCol])
	}
	var sb strings.Builder
	sb.WriteString(decodeUTF16(d.lines[startLine][startCol:]))
	for i := startLine + 1; i < endLine; i++ {
		sb.WriteByte('\n')
		sb.WriteString(decodeUTF16(d.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(decodeUTF16(d.lines[endLine][:endCol]))
	return sb.String()
}

func (d *Document) notifyBefore() {
	for _, w := range d.watchers {
		w.BeforeChange(d)
	}
}

func (d *Document) notifyInsert(r Region, text string) {
	for _, w := range d.watchers {
		w.AfterInsert(d, r, text)
	}
}

func (d *Document) notifyDelete(r Region, text string) {
	for _, w := range d.watchers {
		w.AfterDelete(d, r, text)
	}
}

// normalizeLineEndings converts CRLF and lone CR line endings to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitLines normalizes line endings and splits text into encoded
// lines. The result always has at least one element.
func splitLines(text string) [][]uint16 {
	parts := strings.Split(normalizeLineEndings(text), "\n")
	lines := make([][]uint16, len(parts))
	for i, p := range parts {
		lines[i] = encodeUTF16(p)
	}
	return lines
}

// concatUnits joins two code-unit slices into a fresh slice.
func concatUnits(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
