package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// loggerKey is the context key under which a request-scoped logger travels.
var loggerKey = contextKey{}

// WithLogger returns a new context carrying the given logger. Middleware uses
// this to attach a request-scoped logger (e.g., tagged with a trace ID) that
// downstream components pick up via FromContext.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger from the context.
// Returns nil if no logger has been attached.
func FromContext(ctx context.Context) *slog.Logger {
	log, _ := ctx.Value(loggerKey).(*slog.Logger)
	return log
}

// FromContextOrDefault retrieves the logger from the context, falling back to
// the provided default (or slog.Default if that is nil as well).
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log := FromContext(ctx); log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
