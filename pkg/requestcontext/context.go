// Package requestcontext carries request-scoped values that cross layer
// boundaries: the request timestamp and the request ID.
//
// All operations within a single HTTP request observe the same "now", so an
// expiry decision made in a store matches the timestamps written to logs and
// audit events, and tests can inject a fixed clock without fakes.
package requestcontext

import (
	"context"
	"time"
)

type timeKey struct{}
type requestIDKey struct{}

// WithTime injects the request timestamp into the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey{}, t)
}

// Now returns the request-scoped time, falling back to the wall clock when
// no middleware ran (direct service calls, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithRequestID injects the request ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID or "" when absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
