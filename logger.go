package easel

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by easel. By default easel produces
// no log output. Pass nil to restore the silent default.
//
// Log levels used by easel:
//   - [slog.LevelDebug]: per-frame repaint statistics, commit timings
//   - [slog.LevelWarn]: unparsable colors, unknown font families
//   - [slog.LevelError]: paint failures that aborted a frame
//
// Renderers created with [WithLogger] use their own logger instead.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// packageHandler forwards to whatever handler the package logger holds at
// the time of the call, so long-lived loggers follow SetLogger. Attrs and
// groups are replayed onto the current handler in the order they were added.
type packageHandler struct {
	wrap []func(slog.Handler) slog.Handler
}

func (h packageHandler) target() slog.Handler {
	t := Logger().Handler()
	for _, w := range h.wrap {
		t = w(t)
	}
	return t
}

func (h packageHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return Logger().Handler().Enabled(ctx, l)
}

func (h packageHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.target().Handle(ctx, r)
}

func (h packageHandler) with(w func(slog.Handler) slog.Handler) packageHandler {
	return packageHandler{wrap: append(h.wrap[:len(h.wrap):len(h.wrap)], w)}
}

func (h packageHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(t slog.Handler) slog.Handler { return t.WithAttrs(attrs) })
}

func (h packageHandler) WithGroup(name string) slog.Handler {
	return h.with(func(t slog.Handler) slog.Handler { return t.WithGroup(name) })
}

// packageLogger is the logger of components not given one explicitly.
var packageLogger = slog.New(packageHandler{})
