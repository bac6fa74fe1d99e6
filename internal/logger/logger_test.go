package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "curve.txt")
	l := New(path, slog.LevelInfo)
	log := l.Slog()

	log.Debug("hidden")
	log.Info("drag start", "point", 2)
	log.With("pass", "relight").WithGroup("stencil").Warn("disabled", "ref", 2)

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "] INFO drag start point=2") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "] WARN disabled pass=relight stencil.ref=2") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "[") {
		t.Errorf("line 0 = %q, want a [timestamp] prefix", lines[0])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("log file has %d lines, want 2:\n%s", got, data)
	}
}

func TestTail(t *testing.T) {
	l := New("", slog.LevelDebug)
	for _, s := range []string{"a", "b", "c"} {
		l.Log(s)
	}
	tail := l.Tail(2)
	if len(tail) != 2 || !strings.HasSuffix(tail[0], " b") || !strings.HasSuffix(tail[1], " c") {
		t.Errorf("Tail(2) = %q", tail)
	}
	if got := len(l.Tail(10)); got != 3 {
		t.Errorf("Tail(10) returned %d lines, want 3", got)
	}
}

func TestDefaultIsSilent(t *testing.T) {
	SetDefault(nil)
	if Default().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled, want a silent logger")
	}
	l := New("", slog.LevelDebug)
	SetDefault(l.Slog())
	t.Cleanup(func() { SetDefault(nil) })
	Default().Info("hello")
	if got := len(l.Lines()); got != 1 {
		t.Errorf("got %d lines through Default, want 1", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"info":  slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
