package span

// Map holds the span lists for every document line.
//
// Rows returned by Line are live: they are patched in place by the
// shift operations and become invalid after the next patch or
// replacement. Map is confined to the editing goroutine; analysis
// workers build a fresh Map and hand it over whole.
type Map struct {
	rows [][]Span
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{}
}

// LineCount returns the number of rows in the map.
func (m *Map) LineCount() int {
	return len(m.rows)
}

// Line returns the spans of one row, or nil when line is out of range.
func (m *Map) Line(line int) []Span {
	if line < 0 || line >= len(m.rows) {
		return nil
	}
	return m.rows[line]
}

// SetLine stores the spans for one row, growing the map as needed.
func (m *Map) SetLine(line int, spans []Span) {
	if line < 0 {
		return
	}
	m.EnsureLines(line + 1)
	m.rows[line] = spans
}

// EnsureLines grows the map to at least n rows.
func (m *Map) EnsureLines(n int) {
	for len(m.rows) < n {
		m.rows = append(m.rows, nil)
	}
}

// StyleAt returns the style covering (line, col): the last span on the
// line whose column is at or before col. The second result is false
// when the line has no spans.
func (m *Map) StyleAt(line, col int) (Span, bool) {
	row := m.Line(line)
	if len(row) == 0 {
		return Span{}, false
	}
	cur := row[0]
	for _, s := range row[1:] {
		if s.Col > col {
			break
		}
		cur = s
	}
	return cur, true
}

// PreparedForInsert reports whether the map can be patched in place for
// an insert that added delta lines to a document now lineCount lines
// long: the row count must match the pre-edit line count exactly.
func (m *Map) PreparedForInsert(lineCount, delta int) bool {
	return len(m.rows) > 0 && len(m.rows) == lineCount-delta
}

// PreparedForDelete reports whether the map can be patched in place for
// a delete that removed delta lines from a document now lineCount lines
// long.
func (m *Map) PreparedForDelete(lineCount, delta int) bool {
	return len(m.rows) > 0 && len(m.rows) == lineCount+delta
}

// firstAtOrAfter returns the index of the first span at or after col,
// starting the scan at from, or -1 when no span qualifies.
func firstAtOrAfter(spans []Span, from, col int) int {
	for i := from; i < len(spans); i++ {
		if spans[i].Col >= col {
			return i
		}
	}
	return -1
}

// InsertSingleLine patches the map for text inserted on one line from
// startCol to endCol: spans at or after the insertion point shift right
// by the inserted width, and the column-0 invariant is restored when
// the first span moved.
func (m *Map) InsertSingleLine(line, startCol, endCol int) {
	if line < 0 || line >= len(m.rows) {
		return
	}
	row := m.rows[line]
	idx := firstAtOrAfter(row, 0, startCol)
	if idx == -1 {
		return
	}
	delta := endCol - startCol
	for i := idx; i < len(row); i++ {
		row[i].Col += delta
	}
	if idx == 0 {
		// The insertion landed before the first span. Reuse it as the
		// line-start span when plain, otherwise add a synthetic one.
		if row[0].plain() {
			row[0].Col = 0
		} else {
			row = append([]Span{{Col: 0, Style: StyleNormal}}, row...)
		}
	}
	m.rows[line] = row
}

// InsertMultiLine patches the map for an insertion spanning lines. The
// created lines inherit the style flowing in from the span covering the
// insertion column; spans cut off the start line move onto the new end
// line, rebased past endCol.
func (m *Map) InsertMultiLine(startLine, startCol, endLine, endCol int) {
	if startLine < 0 || startLine >= len(m.rows) || endLine <= startLine {
		return
	}
	row := m.rows[startLine]

	// The extended span covers startCol: the last span at or before it.
	extIdx := firstAtOrAfter(row, 0, startCol)
	if extIdx == -1 {
		extIdx = len(row) - 1
	}
	if extIdx >= 0 && extIdx < len(row) && row[extIdx].Col > startCol {
		extIdx--
	}
	ext := Span{Col: 0, Style: StyleNormal}
	if extIdx >= 0 && extIdx < len(row) {
		ext = row[extIdx]
	}

	created := endLine - startLine
	seeded := make([][]Span, created)
	for i := range seeded {
		seeded[i] = []Span{{Col: 0, Style: ext.Style, Underline: ext.Underline}}
	}
	rows := make([][]Span, 0, len(m.rows)+created)
	rows = append(rows, m.rows[:startLine+1]...)
	rows = append(rows, seeded...)
	rows = append(rows, m.rows[startLine+1:]...)
	m.rows = rows

	var moved []Span
	if extIdx+1 <= len(row) {
		moved = row[extIdx+1:]
	}
	endRow := m.rows[endLine]
	if endCol == 0 && len(moved) > 0 {
		// The cut lands exactly at a span boundary: the end line starts
		// with the moved spans rather than the flowed-in style.
		endRow = endRow[:0]
	}
	if len(moved) > 0 {
		delta := moved[0].Col
		for _, s := range moved {
			s.Col = s.Col - delta + endCol
			endRow = append(endRow, s)
		}
		m.rows[startLine] = row[:extIdx+1]
	}
	m.rows[endLine] = endRow
}

// DeleteSingleLine patches the map for text removed on one line from
// startCol to endCol: spans inside the removed range are dropped, later
// spans shift left, and the line invariants are re-asserted.
func (m *Map) DeleteSingleLine(line, startCol, endCol int) {
	if line < 0 || line >= len(m.rows) {
		return
	}
	row := m.rows[line]
	startIdx := firstAtOrAfter(row, 0, startCol)
	if startIdx == -1 {
		return
	}
	endIdx := firstAtOrAfter(row, startIdx, endCol)
	if endIdx == -1 {
		endIdx = len(row)
	}
	row = append(row[:startIdx], row[endIdx:]...)
	delta := endCol - startCol
	for i := startIdx; i < len(row); i++ {
		row[i].Col -= delta
	}
	m.rows[line] = repairLine(row)
}

// DeleteMultiLine patches the map for a deletion spanning lines: rows
// strictly between are dropped, the start line loses its cut tail, and
// what survives of the old end line is rebased past the join point and
// merged onto the start line's row.
func (m *Map) DeleteMultiLine(startLine, startCol, endLine, endCol int) {
	if startLine < 0 || endLine >= len(m.rows) || startLine >= endLine {
		return
	}
	start := m.rows[startLine]
	idx := len(start) - 1
	for idx > 0 && start[idx].Col >= startCol {
		idx--
	}
	start = start[:idx+1]

	end := m.rows[endLine]
	// Drop leading spans whose whole run fell inside the deleted head.
	for len(end) > 1 && end[0].Col < endCol && end[1].Col <= endCol {
		end = end[1:]
	}
	for i, s := range end {
		if s.Col < endCol {
			end[i].Col = startCol
		} else {
			end[i].Col = s.Col - endCol + startCol
		}
	}

	merged := make([]Span, 0, len(start)+len(end))
	merged = append(merged, start...)
	merged = append(merged, end...)

	rows := make([][]Span, 0, len(m.rows)-(endLine-startLine))
	rows = append(rows, m.rows[:startLine]...)
	rows = append(rows, repairLine(merged))
	rows = append(rows, m.rows[endLine+1:]...)
	m.rows = rows
}

// repairLine re-asserts the per-line invariants after a delete: a span
// exists at column 0 and no span shares a column with its successor
// (the earlier of such a pair collapsed to zero width and is dropped).
func repairLine(row []Span) []Span {
	if len(row) == 0 || row[0].Col != 0 {
		row = append([]Span{{Col: 0, Style: StyleNormal}}, row...)
	}
	for i := 0; i+1 < len(row); {
		if row[i].Col >= row[i+1].Col {
			row = append(row[:i], row[i+1:]...)
		} else {
			i++
		}
	}
	return row
}
