package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards all output.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(Nop())
}

// SetDefault sets the logger every package logs through. Nil restores the
// silent default. Levels in use:
//   - Debug: device state and per-pass diagnostics
//   - Info: lifecycle (config loaded, window opened, drag start and end)
//   - Warn: degraded rendering (stencil entry points unavailable)
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Nop()
	}
	current.Store(l)
}

// Default returns the logger set by SetDefault.
func Default() *slog.Logger {
	return current.Load()
}

// ParseLevel maps a config level name to a slog level; unknown names are Info.
func ParseLevel(s string) slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lv
}
