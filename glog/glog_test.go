package glog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below level leaked through: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn and error output, got %q", out)
	}
}

func TestLoggerFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelDebug, Output: &buf})

	log.Info("count=%d name=%s", 3, "abc")

	if !strings.Contains(buf.String(), "count=3 name=abc") {
		t.Errorf("args not formatted: %q", buf.String())
	}
}

func TestWithFieldAppearsInOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelDebug, Output: &buf}).WithField("job", 7)

	log.Info("running")

	if !strings.Contains(buf.String(), "job=7") {
		t.Errorf("field missing from output: %q", buf.String())
	}
}

func TestWithComponentDerivesNewLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelDebug, Output: &buf})
	derived := base.WithComponent("analysis")

	base.Info("plain")
	derived.Info("tagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[0], "component=analysis") {
		t.Errorf("base logger gained the component field: %q", lines[0])
	}
	if !strings.Contains(lines[1], "component=analysis") {
		t.Errorf("derived logger lost the component field: %q", lines[1])
	}
}

func TestDisableSuppressesOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelDebug, Output: &buf})

	log.Disable()
	log.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote output: %q", buf.String())
	}

	log.Enable()
	log.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("re-enabled logger stayed silent: %q", buf.String())
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	Discard.Error("nothing")
	Discard.WithField("k", "v").Info("still nothing")
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("level names do not round-trip")
	}
	if Level(99).String() != "UNKNOWN" {
		t.Errorf("out-of-range level = %q", Level(99).String())
	}
}
