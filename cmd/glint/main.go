// Package main is a small terminal editor demonstrating the glint
// editing core: typing, selection, undo/redo, live highlighting, and
// current-block marking, all driven through the editor facade.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/glint/config"
	"github.com/dshills/glint/editor"
	"github.com/dshills/glint/glog"
	"github.com/dshills/glint/language"
	"github.com/dshills/glint/language/chromatic"
	"github.com/dshills/glint/language/clike"
	"github.com/dshills/glint/language/lualang"
	"github.com/dshills/glint/theme"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	langName   string
	themeName  string
	logPath    string
	file       string
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.langName != "" {
		cfg.Language = opts.langName
	}
	if opts.themeName != "" {
		cfg.Theme = opts.themeName
		cfg.ThemePath = ""
	}

	log := glog.Discard
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = glog.New(glog.Config{Level: cfg.Level(), Output: f, Prefix: "glint"})
	}

	th, err := pickTheme(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load theme: %v\n", err)
		return 1
	}

	lang, err := pickLanguage(cfg, opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load language: %v\n", err)
		return 1
	}

	text := ""
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", opts.file, err)
			return 1
		}
		text = string(data)
	}

	ed := editor.New(text,
		editor.WithLanguage(lang),
		editor.WithLogger(log),
		editor.WithUndoLimit(cfg.UndoLimit),
		editor.WithTabWidth(cfg.TabWidth),
		editor.WithAutoIndent(cfg.AutoIndent),
		editor.WithSuppressSwitch(cfg.SuppressSwitch),
		editor.WithDebounce(cfg.DebounceInterval()),
		editor.WithMergeWindow(300*time.Millisecond),
	)
	defer ed.Close()

	scr, err := newScreen(ed, th, opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	// Live-reload the theme when the config file changes under us.
	if opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath)
		if err == nil {
			defer w.Close()
			w.OnReload(func(cfg *config.Config, err error) {
				if err != nil {
					log.Warn("config reload failed: %v", err)
					return
				}
				if th, err := pickTheme(cfg); err == nil {
					scr.setTheme(th)
				}
			})
		}
	}

	if err := scr.loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// pickTheme resolves the configured theme: an external theme file
// when theme_path is set, otherwise a built-in by name.
func pickTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.ThemePath != "" {
		if strings.EqualFold(filepath.Ext(cfg.ThemePath), ".json") {
			data, err := os.ReadFile(cfg.ThemePath)
			if err != nil {
				return nil, err
			}
			return theme.ImportVSCode(data)
		}
		return theme.LoadFile(cfg.ThemePath)
	}
	reg := theme.NewRegistry()
	if t, ok := reg.Get(cfg.Theme); ok {
		return t, nil
	}
	return theme.Default(), nil
}

// pickLanguage resolves language support: an explicit name from the
// config first, then detection from the file name. Names ending in
// .lua load a scripted language.
func pickLanguage(cfg *config.Config, file string) (language.Language, error) {
	switch name := cfg.Language; {
	case name == "":
		// fall through to detection
	case strings.EqualFold(filepath.Ext(name), ".lua"):
		return lualang.NewFile(name)
	case name == "clike":
		return clike.New(), nil
	case name == "none":
		return language.Empty{}, nil
	default:
		return chromatic.New(name)
	}
	if file != "" {
		if lang := chromatic.Match(file); lang != nil {
			return lang, nil
		}
	}
	return language.Empty{}, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.langName, "language", "", "Language support (chroma lexer name, 'clike', 'none', or a .lua script)")
	flag.StringVar(&opts.themeName, "theme", "", "Built-in theme name")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to a file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Glint - demo editor for the glint editing core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glint [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: arrows move, shift+arrows select, Ctrl-Z undo, Ctrl-Y redo,\n")
		fmt.Fprintf(os.Stderr, "Ctrl-S save, Ctrl-Q quit.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("glint %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}
	return opts
}
