// Package language defines the contract between the editor and
// pluggable language support. A Language supplies the analyzer that
// produces spans and blocks for a document, plus the small editing
// heuristics the editor consults synchronously between analysis
// passes: completion word characters, indentation, and formatting.
package language

import "github.com/dshills/glint/analysis"

// Language bundles everything the editor needs to support one source
// language. Implementations must be safe to share between the editing
// goroutine and the analysis worker, which in practice means Analyzer
// results must not depend on mutable Language state.
type Language interface {
	// Analyzer returns the analyzer run against document snapshots.
	// Implementations may return the same value on every call.
	Analyzer() analysis.Analyzer

	// IsAutoCompleteChar reports whether r can be part of a
	// completion prefix.
	IsAutoCompleteChar(r rune) bool

	// IndentAdvance returns the extra indent, in columns, for the
	// line following content.
	IndentAdvance(content string) int

	// UseTab reports whether indentation uses tab characters instead
	// of spaces.
	UseTab() bool

	// Format rewrites text into the language's canonical layout.
	// Languages without a formatter return text unchanged.
	Format(text string) (string, error)
}
