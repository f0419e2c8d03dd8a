package contextutil

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loggerKey  contextKey = "logger"
	studentKey contextKey = "student_id"
)

// LoggerFromContext extracts a logger from context if available, otherwise returns the default logger.
// This helper can be used by any package that needs to extract a logger from context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// WithLogger returns a context carrying the given request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithStudent returns a context carrying the authenticated student ID.
// Authentication itself happens upstream; handlers only consume the
// identity the middleware extracted.
func WithStudent(ctx context.Context, studentID int) context.Context {
	return context.WithValue(ctx, studentKey, studentID)
}

// StudentFromContext extracts the authenticated student ID from context.
// The second return value is false when no identity is present.
func StudentFromContext(ctx context.Context) (int, bool) {
	if v := ctx.Value(studentKey); v != nil {
		if id, ok := v.(int); ok {
			return id, true
		}
	}
	return 0, false
}
