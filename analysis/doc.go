// Package analysis coordinates background tokenization of a document.
//
// An Analyzer computes spans and blocks for an immutable document
// snapshot. The Coordinator owns the scheduling: every mutation feeds
// it a fresh snapshot through Invalidate, a debounce window collapses
// bursts of edits into one pass, and a single worker goroutine runs the
// analyzer. Results come back as Completion values tagged with the
// snapshot's version and identity.
//
// # Job lifecycle
//
// Each job moves through
//
//	Idle -> Scheduled -> Running -> Applied | Superseded | Failed
//
// A running job is never aborted by a newer edit. It runs to
// completion and the staleness check happens at apply time instead:
// Apply compares the completion's version and identity against the
// live document and only a still-current result is installed. Analyzer
// errors are non-fatal; the previous spans and blocks stay live.
//
// # Usage
//
//	coord := analysis.NewCoordinator(lang.Analyzer())
//	defer coord.Close()
//
//	// editing goroutine, after each mutation:
//	coord.Invalidate(doc.Snapshot())
//
//	// editing goroutine, when a completion arrives:
//	comp := <-coord.Completions()
//	if coord.Apply(comp, doc) {
//		spans, blocks = comp.Result.Spans(), comp.Result.Blocks()
//	}
//
// Only Invalidate, Apply, and RunOnce touch document state and they
// must run on the editing goroutine. Completions may be received
// anywhere and handed off.
package analysis
