package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/glint/span"
)

// themeFile is the native YAML theme layout:
//
//	name: My Theme
//	background: "#1e1e1e"
//	foreground: "#d4d4d4"
//	styles:
//	  keyword: { color: "#569cd6" }
//	  comment: { color: "#6a9955", italic: true }
type themeFile struct {
	Name          string               `yaml:"name"`
	Background    string               `yaml:"background"`
	Foreground    string               `yaml:"foreground"`
	Selection     string               `yaml:"selection"`
	Cursor        string               `yaml:"cursor"`
	LineHighlight string               `yaml:"line_highlight"`
	BlockLine     string               `yaml:"block_line"`
	Styles        map[string]styleFile `yaml:"styles"`
}

type styleFile struct {
	Color     string `yaml:"color"`
	Underline bool   `yaml:"underline"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
}

// LoadYAML parses a native theme document. Fields left out inherit
// from the default dark theme.
func LoadYAML(data []byte) (*Theme, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("parse theme: missing name")
	}

	t := Default()
	t.Name = f.Name

	colorFields := []struct {
		src string
		dst *Color
	}{
		{f.Background, &t.Background},
		{f.Foreground, &t.Foreground},
		{f.Selection, &t.Selection},
		{f.Cursor, &t.Cursor},
		{f.LineHighlight, &t.LineHighlight},
		{f.BlockLine, &t.BlockLine},
	}
	for _, cf := range colorFields {
		if cf.src == "" {
			continue
		}
		c, err := ParseColor(cf.src)
		if err != nil {
			return nil, err
		}
		*cf.dst = c
	}

	for name, sf := range f.Styles {
		sp, err := parseStyleName(name)
		if err != nil {
			return nil, err
		}
		st := t.StyleFor(sp)
		if sf.Color != "" {
			c, err := ParseColor(sf.Color)
			if err != nil {
				return nil, fmt.Errorf("style %s: %w", name, err)
			}
			st.Foreground = c
		}
		st.Underline = sf.Underline
		st.Bold = sf.Bold
		st.Italic = sf.Italic
		t.Styles[sp] = st
	}
	return t, nil
}

// LoadFile reads a theme from disk, picking the parser by extension:
// .json imports a VS Code theme, anything else parses as native YAML.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportVSCode(data)
	}
	return LoadYAML(data)
}

// parseStyleName resolves a style name strictly, unlike
// span.ParseStyle which aliases unknown names to normal.
func parseStyleName(name string) (span.Style, error) {
	for _, s := range span.Styles() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q", name)
}
