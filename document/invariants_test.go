package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Document Invariants
// ============================================================================

// textGen draws multi-line text from a small alphabet that includes a
// character outside the BMP, so surrogate-pair columns get exercised.
func textGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		pieces := rapid.SliceOfN(
			rapid.SampledFrom([]string{"a", "b", "(", ")", "{", "}", "\n", " ", "\U0001F600"}),
			0, 40,
		).Draw(t, "pieces")
		return strings.Join(pieces, "")
	})
}

// bmpTextGen draws text without surrogate pairs, for properties that
// re-insert decoded text and so must not cut pairs apart.
func bmpTextGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		pieces := rapid.SliceOfN(
			rapid.SampledFrom([]string{"a", "b", "c", "{", "}", "\n", " "}),
			0, 40,
		).Draw(t, "pieces")
		return strings.Join(pieces, "")
	})
}

// drawPos draws a valid cursor position inside d.
func drawPos(t *rapid.T, d *Document, label string) Pos {
	line := rapid.IntRange(0, d.LineCount()-1).Draw(t, label+"Line")
	length, err := d.LineLength(line)
	require.NoError(t, err)
	col := rapid.IntRange(0, length).Draw(t, label+"Col")
	return Pos{Line: line, Col: col}
}

// TestProperty_InsertDeleteRoundTrip verifies that inserting text and then
// deleting the reported region restores the exact prior content.
func TestProperty_InsertDeleteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New(textGen().Draw(t, "initial"))
		before := d.Text()

		p := drawPos(t, d, "insert")
		ins := textGen().Draw(t, "text")

		r, err := d.Insert(p.Line, p.Col, ins)
		require.NoError(t, err)

		_, err = d.Delete(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
		require.NoError(t, err)

		// INVARIANT: the document round-trips to its prior content.
		require.Equal(t, before, d.Text())
	})
}

// TestProperty_DeleteInsertRoundTrip verifies that deleting a region and
// re-inserting the deleted text at its start restores the prior content.
func TestProperty_DeleteInsertRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New(bmpTextGen().Draw(t, "initial"))
		before := d.Text()

		r := NewRegion(drawPos(t, d, "a"), drawPos(t, d, "b"))

		deleted, err := d.Delete(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
		require.NoError(t, err)

		_, err = d.Insert(r.Start.Line, r.Start.Col, deleted)
		require.NoError(t, err)

		require.Equal(t, before, d.Text())
	})
}

// TestProperty_LineCountMatchesText verifies that the line count always
// equals one more than the number of line breaks in the text.
func TestProperty_LineCountMatchesText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New(textGen().Draw(t, "initial"))

		ops := rapid.IntRange(1, 8).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			if rapid.Bool().Draw(t, "doInsert") {
				p := drawPos(t, d, "pos")
				_, err := d.Insert(p.Line, p.Col, textGen().Draw(t, "ins"))
				require.NoError(t, err)
			} else {
				r := NewRegion(drawPos(t, d, "a"), drawPos(t, d, "b"))
				_, err := d.Delete(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
				require.NoError(t, err)
			}

			// INVARIANT: lineCount == breaks + 1, and never below 1.
			require.Equal(t, strings.Count(d.Text(), "\n")+1, d.LineCount())
			require.GreaterOrEqual(t, d.LineCount(), 1)
		}
	})
}
