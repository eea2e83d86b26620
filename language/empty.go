package language

import (
	"context"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/document"
	"github.com/dshills/glint/span"
)

// Empty is the language used when nothing better is known: every line
// is plain text, there are no blocks, no completion characters, and no
// indentation rules.
type Empty struct{}

var _ Language = Empty{}

// Analyzer returns an analyzer that emits one normal span per line.
func (Empty) Analyzer() analysis.Analyzer {
	return analysis.AnalyzerFunc(analyzePlain)
}

// IsAutoCompleteChar always reports false.
func (Empty) IsAutoCompleteChar(rune) bool { return false }

// IndentAdvance always returns zero.
func (Empty) IndentAdvance(string) int { return 0 }

// UseTab always reports false.
func (Empty) UseTab() bool { return false }

// Format returns text unchanged.
func (Empty) Format(text string) (string, error) { return text, nil }

func analyzePlain(ctx context.Context, src *document.Snapshot, res *analysis.Result) error {
	for line := 0; line < src.LineCount(); line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		res.AddSpanAt(line, 0, span.StyleNormal)
	}
	return nil
}
