package clike

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/document"
)

// ===== Generators =====

// sourceGen produces C-ish text mixing every construct the tokenizer
// handles, including unterminated ones and wide characters.
func sourceGen() *rapid.Generator[string] {
	pieces := []string{
		"if", "return", "int", "x", "count_2", "词语",
		"0", "42", "0xFF", "3.14", "1e9f",
		"\"str\"", "\"\\\"esc\\\"\"", "\"open", "'c'", "'\\''",
		"// tail", "/*", "*/", "/* in */",
		"{", "}", "(", ")", "==", "+", ";",
		" ", "\t", "\U0001F600", "\n", "\n\n",
	}
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(pieces), 0, 40).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

// ===== Property-Based Tests =====

// TestProperty_SpanRowsWellFormed verifies that every analyzed line
// gets a span row starting at column zero with strictly ascending
// columns inside the line.
func TestProperty_SpanRowsWellFormed(t *testing.T) {
	lang := New()
	rapid.Check(t, func(t *rapid.T) {
		text := sourceGen().Draw(t, "text")
		doc := document.New(text)
		res := analysis.NewResult()
		require.NoError(t, lang.Analyzer().Analyze(context.Background(), doc.Snapshot(), res))
		res.Finalize(doc.LineCount())

		spans := res.Spans()
		require.Equal(t, doc.LineCount(), spans.LineCount())
		for line := 0; line < doc.LineCount(); line++ {
			width, err := doc.LineLength(line)
			require.NoError(t, err)
			row := spans.Line(line)

			// INVARIANT: every line has at least one span and the
			// first starts at column zero.
			require.NotEmpty(t, row, "line %d", line)
			require.Equal(t, 0, row[0].Col, "line %d", line)

			prev := -1
			for _, s := range row {
				// INVARIANT: columns ascend strictly and stay inside
				// the line (an empty line keeps its column-0 span).
				require.Greater(t, s.Col, prev, "line %d", line)
				if width > 0 {
					require.Less(t, s.Col, width, "line %d", line)
				} else {
					require.Equal(t, 0, s.Col, "line %d", line)
				}
				prev = s.Col
			}
		}
	})
}

// TestProperty_BlockIndexWellFormed verifies that emitted blocks span
// multiple lines, carry in-range coordinates, and arrive sorted by end
// line.
func TestProperty_BlockIndexWellFormed(t *testing.T) {
	lang := New()
	rapid.Check(t, func(t *rapid.T) {
		text := sourceGen().Draw(t, "text")
		doc := document.New(text)
		res := analysis.NewResult()
		require.NoError(t, lang.Analyzer().Analyze(context.Background(), doc.Snapshot(), res))
		res.Finalize(doc.LineCount())

		for _, b := range res.Blocks() {
			// INVARIANT: only multi-line pairs are indexed.
			require.Less(t, b.StartLine, b.EndLine)
			require.GreaterOrEqual(t, b.StartLine, 0)
			require.Less(t, b.EndLine, doc.LineCount())

			startWidth, err := doc.LineLength(b.StartLine)
			require.NoError(t, err)
			endWidth, err := doc.LineLength(b.EndLine)
			require.NoError(t, err)
			require.Less(t, b.StartCol, startWidth)
			require.Less(t, b.EndCol, endWidth)
		}
		require.True(t, res.Blocks().IsSorted())

		// INVARIANT: the suppress switch always exceeds its +10 floor.
		require.GreaterOrEqual(t, res.SuppressSwitch(), 10)
	})
}

// TestProperty_EveryColumnCovered verifies that StyleAt resolves for
// every column of every line once a result is finalized.
func TestProperty_EveryColumnCovered(t *testing.T) {
	lang := New()
	rapid.Check(t, func(t *rapid.T) {
		text := sourceGen().Draw(t, "text")
		doc := document.New(text)
		res := analysis.NewResult()
		require.NoError(t, lang.Analyzer().Analyze(context.Background(), doc.Snapshot(), res))
		res.Finalize(doc.LineCount())

		for line := 0; line < doc.LineCount(); line++ {
			width, err := doc.LineLength(line)
			require.NoError(t, err)
			for col := 0; col < width; col++ {
				_, ok := res.Spans().StyleAt(line, col)
				require.True(t, ok, "line %d col %d uncovered", line, col)
			}
		}
	})
}
