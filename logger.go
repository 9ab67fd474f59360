package fldraw

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled reports
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so SetLogger may
// race with logging from drivers on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by fldraw and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by fldraw:
//   - [slog.LevelDebug]: programmer errors that were clamped and ignored
//     (stack overflow/underflow, vertex outside a path)
//   - [slog.LevelWarn]: degraded output (font fallback, palette substitution)
//
// Example:
//
//	fldraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this to share the
// configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
