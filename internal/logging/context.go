// Package logging carries a request-scoped logrus entry through a context.
package logging

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	entryKey     contextKey = "log_entry"
	requestIDKey contextKey = "request_id"
)

// WithRequestID returns a context carrying the request id and a logger tagged with it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return context.WithValue(ctx, entryKey, log.WithField("request_id", requestID))
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns the request logger, falling back to the standard logger.
func FromContext(ctx context.Context) *log.Entry {
	if entry, ok := ctx.Value(entryKey).(*log.Entry); ok {
		return entry
	}
	return log.NewEntry(log.StandardLogger())
}
