package audit

import (
	"context"
	"net/http"
)

type deviceKey struct{}

// Middleware parses the User-Agent once and stores the device label in the
// request context for whoever records events later.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithDevice(r.Context(), DeviceLabel(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithDevice injects a device label into the context (tests, middleware).
func WithDevice(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, deviceKey{}, label)
}

// DeviceFromContext returns the device label or "" when no middleware ran.
func DeviceFromContext(ctx context.Context) string {
	if label, ok := ctx.Value(deviceKey{}).(string); ok {
		return label
	}
	return ""
}
