package document

import (
	"strings"

	"github.com/google/uuid"
)

// Snapshot is an immutable view of a document's text at a single
// version. Capturing one is O(line count): line storage is shared with
// the document, which never mutates stored lines in place.
//
// Snapshots are safe for concurrent reads from any goroutine.
type Snapshot struct {
	lines    [][]uint16
	version  uint64
	identity uuid.UUID
}

// Snapshot captures the current document state.
func (d *Document) Snapshot() *Snapshot {
	lines := make([][]uint16, len(d.lines))
	copy(lines, d.lines)
	return &Snapshot{
		lines:    lines,
		version:  d.version,
		identity: d.identity,
	}
}

// Version returns the document version the snapshot was captured at.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Identity returns the identity of the captured document.
func (s *Snapshot) Identity() uuid.UUID {
	return s.identity
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns the text of one line, or the empty string when line is
// out of range.
func (s *Snapshot) Line(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return decodeUTF16(s.lines[line])
}

// LineLength returns the length of a line in UTF-16 code units, or 0
// when line is out of range.
func (s *Snapshot) LineLength(line int) int {
	if line < 0 || line >= len(s.lines) {
		return 0
	}
	return len(s.lines[line])
}

// Text returns the full snapshot text with LF line breaks.
func (s *Snapshot) Text() string {
	var sb strings.Builder
	for i, ln := range s.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(decodeUTF16(ln))
	}
	return sb.String()
}
