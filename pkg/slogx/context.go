package slogx

import (
	"context"
	"log/slog"
)

type (
	loggerKey    struct{}
	requestIDKey struct{}
)

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request-scoped logger, or the default logger
// outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

func WithRequestID(ctx context.Context, reqID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, reqID)
	return WithContext(ctx, FromContext(ctx).With("req_id", reqID))
}

// RequestID returns the id assigned by HTTPMiddleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
