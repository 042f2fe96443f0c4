package logging

import (
	"context"
	"io"
	"log/slog"
)

type loggerContextKey struct{}

// WithLogger returns a context carrying the logger, typically one already
// enriched with request attributes by the HTTP middleware.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerContextKey{}, ensureLogger(logger))
}

// FromContext returns the request-scoped logger, or the fallback when the
// context carries none. A nil fallback yields a no-op logger.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return ensureLogger(fallback)
}

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
