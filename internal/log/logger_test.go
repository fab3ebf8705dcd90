package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitialize(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelInfo, &buf)

	if Verbosity() != LevelInfo {
		t.Errorf("expected verbosity %d, got %d", LevelInfo, Verbosity())
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelQuiet, &buf)

	Info("hidden", "key", "value")
	Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output at quiet level, got %q", buf.String())
	}

	Warn("visible", "key", "value")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected warning in output, got %q", buf.String())
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelTrace, &buf)

	Info("test info", "key", "value")
	Debug("test debug", "key", "value")
	Trace("test trace", "key", "value")
	Error("test error", "key", "value")

	out := buf.String()
	for _, want := range []string{"test info", "test debug", "test trace", "test error"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestVerbosityLevels(t *testing.T) {
	tests := []struct {
		level   int
		isDebug bool
	}{
		{LevelQuiet, false},
		{LevelInfo, false},
		{LevelDebug, true},
		{LevelTrace, true},
	}

	var buf bytes.Buffer
	for _, tt := range tests {
		Initialize(tt.level, &buf)
		if IsDebug() != tt.isDebug {
			t.Errorf("at level %d: expected IsDebug()=%v, got %v", tt.level, tt.isDebug, IsDebug())
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelInfo, &buf)

	Progress("Fetching page %d", 2)
	Info("interleaved")
	ProgressDone()

	out := buf.String()
	if !strings.Contains(out, "Fetching page 2\n") {
		t.Errorf("progress line should be terminated before a log line, got %q", out)
	}
}
