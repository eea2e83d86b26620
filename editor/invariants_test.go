package editor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/glint/document"
	"github.com/dshills/glint/language/clike"
)

// ===== Generators =====

// scriptTextGen draws BMP-only text. Undo re-inserts deleted content
// verbatim, and a column that cuts a surrogate pair apart would not
// round-trip through that path.
func scriptTextGen() *rapid.Generator[string] {
	pieces := []string{
		"x", "if", "return", "0", "42", ";", "{", "}",
		" ", "\t", "\n", "词",
	}
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(pieces), 0, 8).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

// drawPos draws a valid position inside e.
func drawPos(t *rapid.T, e *Editor, label string) document.Pos {
	line := rapid.IntRange(0, e.LineCount()-1).Draw(t, label+"Line")
	width, err := e.LineLength(line)
	require.NoError(t, err)
	col := rapid.IntRange(0, width).Draw(t, label+"Col")
	return document.Pos{Line: line, Col: col}
}

// drawRegion draws a valid ordered region inside e.
func drawRegion(t *rapid.T, e *Editor, label string) document.Region {
	return document.NewRegion(drawPos(t, e, label+"A"), drawPos(t, e, label+"B"))
}

// applyOp performs one randomly chosen editing operation on e.
func applyOp(t *rapid.T, e *Editor) {
	ops := []string{
		"insert", "delete", "replace", "type",
		"backspace", "undo", "redo", "move", "select",
	}
	switch rapid.SampledFrom(ops).Draw(t, "op") {
	case "insert":
		p := drawPos(t, e, "ins")
		_, err := e.Insert(p.Line, p.Col, scriptTextGen().Draw(t, "insText"))
		require.NoError(t, err)
	case "delete":
		r := drawRegion(t, e, "del")
		_, err := e.Delete(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
		require.NoError(t, err)
	case "replace":
		r := drawRegion(t, e, "repl")
		_, err := e.Replace(r.Start.Line, r.Start.Col, r.End.Line, r.End.Col,
			scriptTextGen().Draw(t, "replText"))
		require.NoError(t, err)
	case "type":
		_, err := e.InsertText(scriptTextGen().Draw(t, "typed"))
		require.NoError(t, err)
	case "backspace":
		require.NoError(t, e.Backspace())
	case "undo":
		_, err := e.Undo()
		require.NoError(t, err)
	case "redo":
		_, err := e.Redo()
		require.NoError(t, err)
	case "move":
		p := drawPos(t, e, "cur")
		require.NoError(t, e.Cursor().Set(p.Line, p.Col))
	case "select":
		r := drawRegion(t, e, "sel")
		require.NoError(t, e.Cursor().SetRegion(
			r.Start.Line, r.Start.Col, r.End.Line, r.End.Col))
	}
}

// assertCursorInBounds verifies both selection ends sit on valid
// positions of the current document.
func assertCursorInBounds(t *rapid.T, e *Editor) {
	for _, p := range []document.Pos{e.Cursor().Left(), e.Cursor().Right()} {
		require.GreaterOrEqual(t, p.Line, 0)
		require.Less(t, p.Line, e.LineCount())
		width, err := e.LineLength(p.Line)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p.Col, 0)
		require.LessOrEqual(t, p.Col, width)
	}
}

// ===== Property-Based Tests =====

// TestProperty_SpanCoverageUnderEdits verifies that a styled span map
// patched through an arbitrary edit script keeps covering every
// column of every line, and that the cursor never leaves the
// document.
func TestProperty_SpanCoverageUnderEdits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(scriptTextGen().Draw(t, "initial"),
			WithLanguage(clike.New()),
			WithDebounce(time.Hour))
		defer func() { _ = e.Close() }()

		require.NoError(t, e.AnalyzeNow(context.Background()))
		assertCoverage(t, e)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			applyOp(t, e)

			// INVARIANT: every line keeps a span row starting at
			// column zero that resolves a style for every column.
			assertCoverage(t, e)
			assertCursorInBounds(t, e)
		}
	})
}

// TestProperty_UndoAllRestoresInitialText verifies that unwinding the
// whole history after an arbitrary edit script restores the initial
// text exactly.
func TestProperty_UndoAllRestoresInitialText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := scriptTextGen().Draw(t, "initial")
		e := New(initial, WithDebounce(time.Hour))
		defer func() { _ = e.Close() }()

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			applyOp(t, e)
		}

		for e.CanUndo() {
			ok, err := e.Undo()
			require.NoError(t, err)
			require.True(t, ok)
		}

		// INVARIANT: a fully unwound history reproduces the text the
		// editor opened with.
		require.Equal(t, initial, e.Text())
		require.False(t, e.CanUndo())
		assertCursorInBounds(t, e)
		assertCoverage(t, e)
	})
}
