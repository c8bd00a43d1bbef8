// Package httptransport is the thin HTTP layer. Handlers decode, delegate to
// domain services, and encode; business rules live in the services.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propale/internal/platform/middleware"
	"propale/internal/signature/audit"
	"propale/pkg/platform/httputil"
)

// HealthChecker reports whether a backing dependency is reachable. A nil
// checker means the dependency is not configured and is skipped.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Logger    *slog.Logger
	Proposals *ProposalHandler
	Signature *SignatureHandler
	Store     HealthChecker
}

// NewRouter wires middleware and all public endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(audit.Middleware)

	d.Proposals.Register(r)
	d.Signature.Register(r)

	r.Get("/healthz", handleHealth(d.Store))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealth(store HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
