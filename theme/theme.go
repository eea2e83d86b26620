// Package theme maps span styles to concrete colors for rendering.
// The editing core never sees colors; themes live entirely on the
// embedding side and are consumed by renderers such as cmd/glint.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/glint/span"
)

// ErrBadColor reports an unparseable color literal.
var ErrBadColor = errors.New("malformed color")

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses "#rgb", "#rrggbb", or "#rrggbbaa" hex notation.
// Alpha, when present, is ignored.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3:
		v, err := strconv.ParseUint(h, 16, 16)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, ErrBadColor)
		}
		r := uint8(v >> 8 & 0xF)
		g := uint8(v >> 4 & 0xF)
		b := uint8(v & 0xF)
		return Color{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b}, nil
	case 6, 8:
		v, err := strconv.ParseUint(h[:6], 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, ErrBadColor)
		}
		return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	default:
		return Color{}, fmt.Errorf("color %q: %w", s, ErrBadColor)
	}
}

// Hex returns the color in "#rrggbb" notation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style is the rendered appearance of one span style.
type Style struct {
	Foreground Color
	Underline  bool
	Bold       bool
	Italic     bool
}

// Theme defines colors for the editor chrome and every span style.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the editor background color.
	Background Color

	// Foreground is the default text color.
	Foreground Color

	// Selection is the selection highlight color.
	Selection Color

	// Cursor is the cursor color.
	Cursor Color

	// LineHighlight is the current line highlight color.
	LineHighlight Color

	// BlockLine is the color of the current-block guide.
	BlockLine Color

	// Styles maps span styles to their appearance.
	Styles map[span.Style]Style
}

// StyleFor returns the appearance for a span style, falling back to
// the default foreground.
func (t *Theme) StyleFor(s span.Style) Style {
	if st, ok := t.Styles[s]; ok {
		return st
	}
	return Style{Foreground: t.Foreground}
}

// Default returns the built-in dark theme.
func Default() *Theme {
	comment := RGB(106, 153, 85)
	keyword := RGB(86, 156, 214)
	str := RGB(206, 145, 120)
	number := RGB(181, 206, 168)
	function := RGB(220, 220, 170)
	typ := RGB(78, 201, 176)
	variable := RGB(156, 220, 254)
	operator := RGB(212, 212, 212)
	invalid := RGB(244, 71, 71)

	return &Theme{
		Name:          "Default Dark",
		Background:    RGB(30, 30, 30),
		Foreground:    RGB(212, 212, 212),
		Selection:     RGB(64, 64, 128),
		Cursor:        RGB(255, 255, 255),
		LineHighlight: RGB(40, 40, 40),
		BlockLine:     RGB(90, 90, 90),
		Styles: map[span.Style]Style{
			span.StyleNormal:    {Foreground: RGB(212, 212, 212)},
			span.StyleKeyword:   {Foreground: keyword},
			span.StyleComment:   {Foreground: comment, Italic: true},
			span.StyleString:    {Foreground: str},
			span.StyleNumber:    {Foreground: number},
			span.StyleFunction:  {Foreground: function},
			span.StyleType:      {Foreground: typ},
			span.StyleOperator:  {Foreground: operator},
			span.StyleIdent:     {Foreground: variable},
			span.StyleLiteral:   {Foreground: RGB(79, 193, 255)},
			span.StyleAttribute: {Foreground: RGB(215, 186, 125)},
			span.StyleError:     {Foreground: invalid, Underline: true},
		},
	}
}

// Light returns the built-in light theme.
func Light() *Theme {
	comment := RGB(0, 128, 0)
	keyword := RGB(0, 0, 255)
	str := RGB(163, 21, 21)
	number := RGB(9, 134, 88)
	function := RGB(121, 94, 38)
	typ := RGB(38, 127, 153)
	variable := RGB(0, 16, 128)
	invalid := RGB(205, 49, 49)

	return &Theme{
		Name:          "Light",
		Background:    RGB(255, 255, 255),
		Foreground:    RGB(0, 0, 0),
		Selection:     RGB(173, 214, 255),
		Cursor:        RGB(0, 0, 0),
		LineHighlight: RGB(245, 245, 245),
		BlockLine:     RGB(180, 180, 180),
		Styles: map[span.Style]Style{
			span.StyleNormal:    {Foreground: RGB(0, 0, 0)},
			span.StyleKeyword:   {Foreground: keyword},
			span.StyleComment:   {Foreground: comment, Italic: true},
			span.StyleString:    {Foreground: str},
			span.StyleNumber:    {Foreground: number},
			span.StyleFunction:  {Foreground: function},
			span.StyleType:      {Foreground: typ},
			span.StyleOperator:  {Foreground: RGB(0, 0, 0)},
			span.StyleIdent:     {Foreground: variable},
			span.StyleLiteral:   {Foreground: RGB(0, 112, 193)},
			span.StyleAttribute: {Foreground: RGB(121, 94, 38)},
			span.StyleError:     {Foreground: invalid, Underline: true},
		},
	}
}

// Monokai returns the built-in Monokai-inspired theme.
func Monokai() *Theme {
	pink := RGB(249, 38, 114)
	green := RGB(166, 226, 46)
	orange := RGB(253, 151, 31)
	yellow := RGB(230, 219, 116)
	blue := RGB(102, 217, 239)
	purple := RGB(174, 129, 255)
	comment := RGB(117, 113, 94)
	white := RGB(248, 248, 242)

	return &Theme{
		Name:          "Monokai",
		Background:    RGB(39, 40, 34),
		Foreground:    white,
		Selection:     RGB(73, 72, 62),
		Cursor:        RGB(248, 248, 240),
		LineHighlight: RGB(62, 61, 50),
		BlockLine:     RGB(100, 98, 86),
		Styles: map[span.Style]Style{
			span.StyleNormal:    {Foreground: white},
			span.StyleKeyword:   {Foreground: pink},
			span.StyleComment:   {Foreground: comment},
			span.StyleString:    {Foreground: yellow},
			span.StyleNumber:    {Foreground: purple},
			span.StyleFunction:  {Foreground: green},
			span.StyleType:      {Foreground: blue, Italic: true},
			span.StyleOperator:  {Foreground: pink},
			span.StyleIdent:     {Foreground: white},
			span.StyleLiteral:   {Foreground: purple},
			span.StyleAttribute: {Foreground: orange},
			span.StyleError:     {Foreground: RGB(249, 38, 114), Bold: true},
		},
	}
}

// Registry holds available themes.
type Registry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewRegistry creates a registry seeded with the built-in themes, with
// the dark theme current.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	r.Register(Default())
	r.Register(Light())
	r.Register(Monokai())
	r.current = r.themes["Default Dark"]
	return r
}

// Register adds a theme, replacing any theme with the same name.
func (r *Registry) Register(t *Theme) {
	r.themes[t.Name] = t
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Current returns the current theme.
func (r *Registry) Current() *Theme {
	return r.current
}

// SetCurrent switches the current theme by name.
func (r *Registry) SetCurrent(name string) bool {
	if t, ok := r.themes[name]; ok {
		r.current = t
		return true
	}
	return false
}

// Names returns all registered theme names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	return names
}
