// Package clike supports C-family sources with a hand-written line
// tokenizer covering line and block comments, string and character
// literals, numbers, keywords, and brace-delimited blocks. Block
// comment state carries across lines; everything else resets at each
// newline, which keeps a full-document pass cheap and predictable.
package clike

import (
	"context"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/document"
	"github.com/dshills/glint/language"
	"github.com/dshills/glint/span"
)

// Default keyword set, C plus the common C++ structural words.
var cKeywords = []string{
	"auto", "break", "case", "char", "class", "const", "continue",
	"default", "do", "double", "else", "enum", "extern", "float",
	"for", "goto", "if", "inline", "int", "long", "namespace", "new",
	"register", "return", "short", "signed", "sizeof", "static",
	"struct", "switch", "typedef", "union", "unsigned", "using",
	"void", "volatile", "while",
}

var cLiterals = []string{"true", "false", "NULL", "nullptr"}

// Language tokenizes C-family source. Construct with New; the zero
// value has no keyword table.
type Language struct {
	keywords map[string]struct{}
	literals map[string]struct{}
	tabWidth int
	useTab   bool
}

var _ language.Language = (*Language)(nil)

// Option adjusts a Language.
type Option func(*Language)

// WithKeywords replaces the keyword set.
func WithKeywords(words ...string) Option {
	return func(l *Language) {
		l.keywords = toSet(words)
	}
}

// WithLiterals replaces the set of words styled as literals.
func WithLiterals(words ...string) Option {
	return func(l *Language) {
		l.literals = toSet(words)
	}
}

// WithTabWidth sets the indent width in columns.
func WithTabWidth(n int) Option {
	return func(l *Language) {
		if n > 0 {
			l.tabWidth = n
		}
	}
}

// WithTabs switches indentation to tab characters.
func WithTabs() Option {
	return func(l *Language) {
		l.useTab = true
	}
}

// New builds a Language with C defaults.
func New(opts ...Option) *Language {
	l := &Language{
		keywords: toSet(cKeywords),
		literals: toSet(cLiterals),
		tabWidth: 4,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Analyzer returns the analyzer that tokenizes every line and indexes
// brace blocks.
func (l *Language) Analyzer() analysis.Analyzer {
	return analysis.AnalyzerFunc(l.analyze)
}

func (l *Language) analyze(ctx context.Context, src *document.Snapshot, res *analysis.Result) error {
	var blocks analysis.BlockTracker
	st := stateNormal
	for line := 0; line < src.LineCount(); line++ {
		if line%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		text := src.Line(line)
		tokens, braces, next := l.lexLine(text, st)
		st = next
		emitLine(res, line, document.UTF16Len(text), tokens)
		for _, b := range braces {
			if b.open {
				blocks.Open(line, b.col)
			} else {
				blocks.Close(res, line, b.col)
			}
		}
	}
	blocks.Finish(res)
	return nil
}

// emitLine converts a token list into the line's span row. Gaps
// between tokens become normal spans and adjacent same-style runs
// merge into one span.
func emitLine(res *analysis.Result, line, width int, tokens []token) {
	col := 0
	last := span.StyleNormal
	emitted := false
	add := func(c int, s span.Style) {
		if emitted && s == last {
			return
		}
		res.AddSpanAt(line, c, s)
		last, emitted = s, true
	}
	for _, t := range tokens {
		if t.start > col {
			add(col, span.StyleNormal)
		}
		add(t.start, t.style)
		if t.end > col {
			col = t.end
		}
	}
	if col < width {
		add(col, span.StyleNormal)
	}
	if !emitted {
		res.AddSpanAt(line, 0, span.StyleNormal)
	}
}

// IsAutoCompleteChar reports whether r extends a completion prefix.
func (l *Language) IsAutoCompleteChar(r rune) bool {
	return isIdentPart(r)
}

// IndentAdvance tokenizes content as a standalone line and returns
// tabWidth extra columns per brace left open on it.
func (l *Language) IndentAdvance(content string) int {
	_, braces, _ := l.lexLine(content, stateNormal)
	advance := 0
	for _, b := range braces {
		if b.open {
			advance++
		} else if advance > 0 {
			advance--
		}
	}
	return advance * l.tabWidth
}

// UseTab reports whether indentation uses tab characters.
func (l *Language) UseTab() bool {
	return l.useTab
}

// Format returns text unchanged.
func (l *Language) Format(text string) (string, error) {
	return text, nil
}
