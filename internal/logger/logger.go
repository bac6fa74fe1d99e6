package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPath is the log file, relative to the working directory.
const DefaultPath = "logs/curve.txt"

// Logger stores log lines in memory (for the on-screen overlay) and appends
// them to a file on disk. It is a slog.Handler so it can back a *slog.Logger.
type Logger struct {
	store *store
	level slog.Level
	attrs string
	group string
}

type store struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to path at the given minimum level. An empty
// path keeps lines in memory only. The log directory is created if needed.
func New(path string, level slog.Level) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{store: &store{path: path}, level: level}
}

// Log appends a line prefixed with a [timestamp] to memory and to the file.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	s := l.store
	s.mu.Lock()
	s.lines = append(s.lines, stamped)
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	out := make([]string, len(l.store.lines))
	copy(out, l.store.lines)
	return out
}

// Tail returns the last n stored lines.
func (l *Logger) Tail(n int) []string {
	lines := l.Lines()
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Slog wraps l in a *slog.Logger.
func (l *Logger) Slog() *slog.Logger { return slog.New(l) }

func (l *Logger) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level
}

// Handle formats a record as "LEVEL message key=value ..." and logs it.
func (l *Logger) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(l.attrs)
	r.Attrs(func(a slog.Attr) bool {
		l.writeAttr(&b, a)
		return true
	})
	l.Log(b.String())
	return nil
}

func (l *Logger) writeAttr(b *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if l.group != "" {
		key = l.group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value)
}

func (l *Logger) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *l
	var b strings.Builder
	b.WriteString(l.attrs)
	for _, a := range attrs {
		l.writeAttr(&b, a)
	}
	c.attrs = b.String()
	return &c
}

func (l *Logger) WithGroup(name string) slog.Handler {
	if name == "" {
		return l
	}
	c := *l
	if c.group != "" {
		name = c.group + "." + name
	}
	c.group = name
	return &c
}
