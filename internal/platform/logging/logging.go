// Package logging builds the server's slog logger and carries
// request-scoped loggers through contexts. Every handler built by New
// redacts credentials, session IDs and masked control input with masq.
//
// Services log failures with the operation, the IDs involved, and the
// whole error chain; the request logger adds request, correlation and
// session IDs:
//
//	logging.FromContext(ctx).ErrorContext(ctx, "failed to save preferences",
//	    slog.String("operation", "SavePreferences"),
//	    slog.String(logging.SessionIDField, sessionID),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New returns a logger writing to w at level ("debug", "info", "warn" or
// "error"; anything else means info). Format "text" selects logfmt-style
// output and anything else JSON. Debug logs also carry source locations.
func New(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
