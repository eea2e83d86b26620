// Package config loads and watches the editor configuration.
//
// Configuration lives in a single TOML file. A missing file is not an
// error; defaults apply. GLINT_* environment variables override file
// values, and Watcher reloads the file when it changes on disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/glint/glog"
)

// Config holds the editor settings.
type Config struct {
	// UndoLimit caps the number of undo units kept. Zero or negative
	// selects the history default.
	UndoLimit int `toml:"undo_limit"`

	// TabWidth is the number of columns an indentation step occupies.
	TabWidth int `toml:"tab_width"`

	// AutoIndent applies the language's indent advance after a line
	// break is inserted.
	AutoIndent bool `toml:"auto_indent"`

	// DebounceMS is the quiet period in milliseconds between the last
	// edit and the start of a background analysis pass.
	DebounceMS int `toml:"debounce_ms"`

	// SuppressSwitch overrides the analyzer-computed block-switch cap
	// when positive. Zero keeps the analyzer's value.
	SuppressSwitch int `toml:"suppress_switch"`

	// Language names the language support to load. Empty means detect
	// from the file name.
	Language string `toml:"language"`

	// Theme names a built-in color theme.
	Theme string `toml:"theme"`

	// ThemePath points at a theme file (YAML, or a VS Code JSON
	// theme). When set it takes precedence over Theme.
	ThemePath string `toml:"theme_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UndoLimit:      1000,
		TabWidth:       4,
		AutoIndent:     true,
		DebounceMS:     150,
		SuppressSwitch: 0,
		Language:       "",
		Theme:          "Default Dark",
		ThemePath:      "",
		LogLevel:       "info",
	}
}

// Load reads the configuration file at path, applies GLINT_*
// environment overrides, and validates the result. A missing file
// yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the file, without environment overrides or
// validation. A missing file yields the defaults without error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	return cfg, nil
}

// Validate reports the first nonsensical setting.
func (c *Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be at least 1, got %d", c.TabWidth)
	}
	if c.UndoLimit < 0 {
		return fmt.Errorf("undo_limit must not be negative, got %d", c.UndoLimit)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if c.SuppressSwitch < 0 {
		return fmt.Errorf("suppress_switch must not be negative, got %d", c.SuppressSwitch)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// DebounceInterval returns DebounceMS as a duration.
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Level returns the configured log level.
func (c *Config) Level() glog.Level {
	return glog.ParseLevel(c.LogLevel)
}

// applyEnv overrides fields from GLINT_* environment variables.
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("GLINT_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("GLINT_LANGUAGE"); ok {
		c.Language = v
	}
	if v, ok := os.LookupEnv("GLINT_THEME"); ok {
		c.Theme = v
	}
	if v, ok := os.LookupEnv("GLINT_THEME_PATH"); ok {
		c.ThemePath = v
	}
	if err := envInt("GLINT_UNDO_LIMIT", &c.UndoLimit); err != nil {
		return err
	}
	if err := envInt("GLINT_TAB_WIDTH", &c.TabWidth); err != nil {
		return err
	}
	if err := envInt("GLINT_DEBOUNCE_MS", &c.DebounceMS); err != nil {
		return err
	}
	if err := envInt("GLINT_SUPPRESS_SWITCH", &c.SuppressSwitch); err != nil {
		return err
	}
	if err := envBool("GLINT_AUTO_INDENT", &c.AutoIndent); err != nil {
		return err
	}
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return fmt.Errorf("%s: cannot parse %q as bool", key, v)
	}
	return nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
