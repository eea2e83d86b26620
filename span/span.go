package span

import "fmt"

// Style identifies how a run of characters should be rendered. The
// editing core never interprets styles; they are opaque identifiers the
// embedding renderer maps to concrete colors.
type Style uint8

// Styles produced by analyzers.
const (
	StyleNormal Style = iota
	StyleKeyword
	StyleComment
	StyleString
	StyleNumber
	StyleFunction
	StyleType
	StyleOperator
	StyleIdent
	StyleLiteral
	StyleAttribute
	StyleError

	// Sentinel for iteration
	styleCount
)

// styleNames maps styles to their string names.
var styleNames = []string{
	StyleNormal:    "normal",
	StyleKeyword:   "keyword",
	StyleComment:   "comment",
	StyleString:    "string",
	StyleNumber:    "number",
	StyleFunction:  "function",
	StyleType:      "type",
	StyleOperator:  "operator",
	StyleIdent:     "identifier",
	StyleLiteral:   "literal",
	StyleAttribute: "attribute",
	StyleError:     "error",
}

// String returns the string name of the style.
func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// ParseStyle converts a style name back to its Style. Unknown names map
// to StyleNormal.
func ParseStyle(name string) Style {
	for i, n := range styleNames {
		if n == name {
			return Style(i)
		}
	}
	return StyleNormal
}

// Styles returns all defined styles, for consumers that build lookup
// tables (themes, scripting bridges).
func Styles() []Style {
	out := make([]Style, styleCount)
	for i := range out {
		out[i] = Style(i)
	}
	return out
}

// Span is one style run on a line. It starts at Col and runs to the
// next span's column or the line end.
type Span struct {
	Col       int
	Style     Style
	Underline bool
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Underline {
		return fmt.Sprintf("{%d %s underline}", s.Col, s.Style)
	}
	return fmt.Sprintf("{%d %s}", s.Col, s.Style)
}

// plain reports whether the span carries no decoration, so a shift can
// reuse it as the synthetic column-0 span.
func (s Span) plain() bool {
	return s.Style == StyleNormal && !s.Underline
}
