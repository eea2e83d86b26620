package theme

import (
	"errors"
	"testing"

	"github.com/dshills/glint/span"
)

func TestParseColorForms(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#1e1e1e", RGB(30, 30, 30)},
		{"1e1e1e", RGB(30, 30, 30)},
		{"#fff", RGB(255, 255, 255)},
		{"#a3c", RGB(0xAA, 0x33, 0xCC)},
		{"#ff000080", RGB(255, 0, 0)}, // alpha ignored
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseColorRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#zzzzzz", "red"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrBadColor", in, err)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := RGB(30, 144, 255)
	got, err := ParseColor(c.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}
}

func TestStyleForFallsBackToForeground(t *testing.T) {
	th := &Theme{
		Foreground: RGB(1, 2, 3),
		Styles: map[span.Style]Style{
			span.StyleKeyword: {Foreground: RGB(9, 9, 9)},
		},
	}
	if got := th.StyleFor(span.StyleKeyword).Foreground; got != RGB(9, 9, 9) {
		t.Errorf("keyword = %v", got)
	}
	if got := th.StyleFor(span.StyleComment).Foreground; got != RGB(1, 2, 3) {
		t.Errorf("fallback = %v, want default foreground", got)
	}
}

func TestBuiltInThemesCoverEveryStyle(t *testing.T) {
	for _, th := range []*Theme{Default(), Light(), Monokai()} {
		for _, s := range span.Styles() {
			if _, ok := th.Styles[s]; !ok {
				t.Errorf("theme %s misses style %s", th.Name, s)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if r.Current() == nil || r.Current().Name != "Default Dark" {
		t.Fatalf("current = %v", r.Current())
	}
	if _, ok := r.Get("Monokai"); !ok {
		t.Error("Monokai not registered")
	}
	if !r.SetCurrent("Light") {
		t.Fatal("SetCurrent(Light) failed")
	}
	if r.Current().Name != "Light" {
		t.Errorf("current = %s, want Light", r.Current().Name)
	}
	if r.SetCurrent("nope") {
		t.Error("SetCurrent accepted unknown theme")
	}
	if len(r.Names()) != 3 {
		t.Errorf("names = %v, want 3 built-ins", r.Names())
	}

	custom := &Theme{Name: "Custom"}
	r.Register(custom)
	if got, _ := r.Get("Custom"); got != custom {
		t.Error("custom theme not retrievable")
	}
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
name: Test Theme
background: "#101010"
foreground: "#e0e0e0"
styles:
  keyword: { color: "#ff0000", bold: true }
  comment: { color: "#00ff00", italic: true }
`)
	th, err := LoadYAML(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.Name != "Test Theme" {
		t.Errorf("name = %q", th.Name)
	}
	if th.Background != RGB(16, 16, 16) {
		t.Errorf("background = %v", th.Background)
	}
	kw := th.StyleFor(span.StyleKeyword)
	if kw.Foreground != RGB(255, 0, 0) || !kw.Bold {
		t.Errorf("keyword = %+v", kw)
	}
	cm := th.StyleFor(span.StyleComment)
	if cm.Foreground != RGB(0, 255, 0) || !cm.Italic {
		t.Errorf("comment = %+v", cm)
	}
	// Unmentioned pieces inherit the defaults.
	if th.StyleFor(span.StyleString) != Default().StyleFor(span.StyleString) {
		t.Error("string style did not inherit default")
	}
	if th.Selection != Default().Selection {
		t.Error("selection did not inherit default")
	}
}

func TestLoadYAMLRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing name", `background: "#000000"`},
		{"unknown style", "name: X\nstyles:\n  shouty: { color: \"#fff\" }"},
		{"bad color", "name: X\nstyles:\n  keyword: { color: \"nope\" }"},
		{"not yaml", `{{{`},
	}
	for _, c := range cases {
		if _, err := LoadYAML([]byte(c.data)); err == nil {
			t.Errorf("%s: loaded without error", c.name)
		}
	}
}
