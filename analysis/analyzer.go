package analysis

import (
	"context"

	"github.com/dshills/glint/document"
)

// Analyzer produces spans and blocks for a document snapshot.
//
// Analyze runs on a worker goroutine. Implementations read only the
// snapshot, write only the result, and should return ctx.Err() when the
// context is cancelled mid-pass. An analyzer must tolerate being
// invoked repeatedly and having its results discarded.
type Analyzer interface {
	Analyze(ctx context.Context, src *document.Snapshot, res *Result) error
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, src *document.Snapshot, res *Result) error

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, src *document.Snapshot, res *Result) error {
	return f(ctx, src, res)
}
