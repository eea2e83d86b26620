package theme

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/glint/span"
)

// scopeStyles maps TextMate scope prefixes onto span styles. A scope
// matches a prefix exactly or at a dot boundary; the longest match
// wins.
var scopeStyles = []struct {
	prefix string
	style  span.Style
}{
	{"comment", span.StyleComment},
	{"string", span.StyleString},
	{"constant.numeric", span.StyleNumber},
	{"constant.language", span.StyleLiteral},
	{"constant", span.StyleLiteral},
	{"keyword.operator", span.StyleOperator},
	{"keyword", span.StyleKeyword},
	{"storage", span.StyleKeyword},
	{"entity.name.function", span.StyleFunction},
	{"support.function", span.StyleFunction},
	{"entity.name.type", span.StyleType},
	{"entity.name.class", span.StyleType},
	{"support.type", span.StyleType},
	{"support.class", span.StyleType},
	{"variable", span.StyleIdent},
	{"punctuation", span.StyleOperator},
	{"entity.other.attribute-name", span.StyleAttribute},
	{"invalid", span.StyleError},
}

// ImportVSCode converts a VS Code color theme JSON document. Scopes
// without a mapping onto a span style are skipped; editor chrome
// colors and styles not mentioned inherit from the default dark theme.
func ImportVSCode(data []byte) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("vscode theme: invalid json")
	}

	t := Default()
	t.Name = "Imported"
	if name := gjson.GetBytes(data, "name"); name.Exists() {
		t.Name = name.String()
	}

	colors := gjson.GetBytes(data, "colors")
	setColor := func(dst *Color, key string) {
		v := colors.Get(strings.ReplaceAll(key, ".", "\\."))
		if !v.Exists() {
			return
		}
		if c, err := ParseColor(v.String()); err == nil {
			*dst = c
		}
	}
	setColor(&t.Background, "editor.background")
	setColor(&t.Foreground, "editor.foreground")
	setColor(&t.Selection, "editor.selectionBackground")
	setColor(&t.Cursor, "editorCursor.foreground")
	setColor(&t.LineHighlight, "editor.lineHighlightBackground")
	setColor(&t.BlockLine, "editorBracketMatch.border")

	for _, rule := range gjson.GetBytes(data, "tokenColors").Array() {
		settings := rule.Get("settings")
		fg := settings.Get("foreground")
		fontStyle := settings.Get("fontStyle")
		for _, scope := range ruleScopes(rule.Get("scope")) {
			sp, ok := styleForScope(scope)
			if !ok {
				continue
			}
			st := t.StyleFor(sp)
			if fg.Exists() {
				if c, err := ParseColor(fg.String()); err == nil {
					st.Foreground = c
				}
			}
			if fontStyle.Exists() {
				fs := fontStyle.String()
				st.Italic = strings.Contains(fs, "italic")
				st.Bold = strings.Contains(fs, "bold")
				st.Underline = strings.Contains(fs, "underline")
			}
			t.Styles[sp] = st
		}
	}
	return t, nil
}

// ruleScopes flattens a tokenColors scope value, which may be a
// string, a comma-separated string, or an array of strings.
func ruleScopes(v gjson.Result) []string {
	var raw []string
	if v.IsArray() {
		for _, s := range v.Array() {
			raw = append(raw, s.String())
		}
	} else if v.Type == gjson.String {
		raw = strings.Split(v.String(), ",")
	}
	out := raw[:0]
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func styleForScope(scope string) (span.Style, bool) {
	bestLen := -1
	var best span.Style
	for _, e := range scopeStyles {
		if scopeMatches(scope, e.prefix) && len(e.prefix) > bestLen {
			best, bestLen = e.style, len(e.prefix)
		}
	}
	return best, bestLen >= 0
}

func scopeMatches(scope, prefix string) bool {
	return scope == prefix || strings.HasPrefix(scope, prefix+".")
}
