// Package chromatic adapts chroma lexers to the analysis pipeline,
// giving the editor stock highlighting for the several hundred
// languages chroma ships without writing a tokenizer for each.
package chromatic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/glint/analysis"
	"github.com/dshills/glint/document"
	"github.com/dshills/glint/language"
	"github.com/dshills/glint/span"
)

// ErrUnknownLanguage reports that chroma has no lexer under the
// requested name.
var ErrUnknownLanguage = errors.New("unknown language")

// Language adapts one chroma lexer. Chroma tokenizes whole documents,
// so each analysis pass feeds the full snapshot text through the lexer
// and splits the token stream back into lines.
type Language struct {
	name     string
	lexer    chroma.Lexer
	tabWidth int
}

var _ language.Language = (*Language)(nil)

// New returns the chroma-backed language registered under name.
func New(name string) (*Language, error) {
	lx := lexers.Get(name)
	if lx == nil {
		return nil, fmt.Errorf("language %q: %w", name, ErrUnknownLanguage)
	}
	return &Language{name: lx.Config().Name, lexer: chroma.Coalesce(lx), tabWidth: 4}, nil
}

// Match returns the language for a file name, falling back to plain
// text when nothing matches.
func Match(filename string) *Language {
	lx := lexers.Match(filename)
	if lx == nil {
		lx = lexers.Fallback
	}
	return &Language{name: lx.Config().Name, lexer: chroma.Coalesce(lx), tabWidth: 4}
}

// Name returns the chroma lexer name.
func (l *Language) Name() string {
	return l.name
}

// Analyzer returns the analyzer that runs the chroma lexer over the
// snapshot and derives brace blocks from its punctuation tokens.
func (l *Language) Analyzer() analysis.Analyzer {
	return analysis.AnalyzerFunc(l.analyze)
}

func (l *Language) analyze(ctx context.Context, src *document.Snapshot, res *analysis.Result) error {
	it, err := l.lexer.Tokenise(nil, src.Text())
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", l.name, err)
	}
	lines := chroma.SplitTokensIntoLines(it.Tokens())

	var blocks analysis.BlockTracker
	for li := 0; li < len(lines) && li < src.LineCount(); li++ {
		if li%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		col := 0
		last := span.StyleNormal
		emitted := false
		for _, tok := range lines[li] {
			val := strings.TrimSuffix(tok.Value, "\n")
			if val == "" {
				continue
			}
			st := styleFor(tok.Type)
			if !emitted || st != last {
				res.AddSpanAt(li, col, st)
				last, emitted = st, true
			}
			col = scanValue(&blocks, res, li, col, val, st)
		}
		if !emitted {
			res.AddSpanAt(li, 0, span.StyleNormal)
		}
	}
	blocks.Finish(res)
	return nil
}

// scanValue advances col across val in UTF-16 units, pairing braces
// when the token is punctuation.
func scanValue(t *analysis.BlockTracker, res *analysis.Result, line, col int, val string, st span.Style) int {
	for _, r := range val {
		if st == span.StyleOperator {
			switch r {
			case '{':
				t.Open(line, col)
			case '}':
				t.Close(res, line, col)
			}
		}
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// styleFor maps a chroma token category onto a span style. The mapping
// collapses chroma's fine-grained types down to the handful of styles
// the span map carries.
func styleFor(t chroma.TokenType) span.Style {
	switch {
	case t.InCategory(chroma.Comment):
		return span.StyleComment
	case t.InSubCategory(chroma.LiteralString):
		return span.StyleString
	case t.InSubCategory(chroma.LiteralNumber):
		return span.StyleNumber
	case t.InCategory(chroma.Literal):
		return span.StyleLiteral
	case t == chroma.KeywordType:
		return span.StyleType
	case t.InCategory(chroma.Keyword):
		return span.StyleKeyword
	case t == chroma.NameFunction:
		return span.StyleFunction
	case t == chroma.NameClass || t == chroma.NameBuiltin:
		return span.StyleType
	case t == chroma.NameConstant:
		return span.StyleLiteral
	case t == chroma.NameDecorator || t == chroma.NameAttribute:
		return span.StyleAttribute
	case t.InCategory(chroma.Operator):
		return span.StyleOperator
	case t.InCategory(chroma.Punctuation):
		return span.StyleOperator
	case t == chroma.Error:
		return span.StyleError
	default:
		return span.StyleNormal
	}
}

// IsAutoCompleteChar reports whether r extends a completion prefix.
func (l *Language) IsAutoCompleteChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IndentAdvance counts braces left open on content. Chroma offers no
// per-line lexing, so quoted braces are not excluded here.
func (l *Language) IndentAdvance(content string) int {
	advance := 0
	for _, r := range content {
		switch r {
		case '{':
			advance++
		case '}':
			if advance > 0 {
				advance--
			}
		}
	}
	return advance * l.tabWidth
}

// UseTab reports whether indentation uses tab characters.
func (l *Language) UseTab() bool {
	return false
}

// Format returns text unchanged.
func (l *Language) Format(text string) (string, error) {
	return text, nil
}
