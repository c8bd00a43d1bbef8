// Package pdfmerge appends the variant's floor-plan PDF to a generated
// proposal. The operation never fails from the caller's point of view: worst
// case, the caller gets its own bytes back.
package pdfmerge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.opentelemetry.io/otel"

	"propale/internal/pricing"
)

var tracer = otel.Tracer("propale/pdfmerge")

// planPaths are the fixed floor-plan asset paths, keyed by variant.
var planPaths = map[pricing.Variant]string{
	pricing.VariantColiving:  "/plans/plan-coliving.pdf",
	pricing.VariantLogements: "/plans/plan-3-logements.pdf",
}

// Merger fetches floor plans and concatenates them onto proposals.
type Merger struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	// onFallback is called whenever the merged output is not
	// proposal-plus-plan (metrics hook; may be nil).
	onFallback func()
}

type Option func(*Merger)

// WithHTTPClient overrides the plan-fetching client (tests).
func WithHTTPClient(c *http.Client) Option {
	return func(m *Merger) { m.client = c }
}

// WithFallbackHook registers a callback for degraded merges.
func WithFallbackHook(fn func()) Option {
	return func(m *Merger) { m.onFallback = fn }
}

// New builds a Merger fetching plans relative to baseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *Merger {
	m := &Merger{
		baseURL: baseURL,
		client:  http.DefaultClient,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PlanURL returns the absolute URL of the variant's floor plan.
func (m *Merger) PlanURL(v pricing.Variant) string {
	return m.baseURL + planPaths[v]
}

// MergeWithPlan returns the proposal with the variant's floor-plan pages
// appended, in order: all proposal pages, then all plan pages.
//
// Degradation ladder, never an error:
//   - plan fetch fails (network, non-2xx) -> proposal bytes, unchanged
//   - merge fails (malformed input, library error) -> proposal bytes, unchanged
func (m *Merger) MergeWithPlan(ctx context.Context, proposal []byte, v pricing.Variant) []byte {
	ctx, span := tracer.Start(ctx, "pdfmerge.MergeWithPlan")
	defer span.End()

	plan, err := m.fetchPlan(ctx, v)
	if err != nil {
		m.logger.WarnContext(ctx, "plan unavailable, serving proposal without plan",
			"variant", v, "error", err)
		m.fallback()
		return proposal
	}

	var buf bytes.Buffer
	readers := []io.ReadSeeker{bytes.NewReader(proposal), bytes.NewReader(plan)}
	if err := api.MergeRaw(readers, &buf, model.NewDefaultConfiguration()); err != nil {
		m.logger.ErrorContext(ctx, "merge failed, serving unmerged proposal",
			"variant", v, "error", err)
		m.fallback()
		return proposal
	}

	return buf.Bytes()
}

func (m *Merger) fetchPlan(ctx context.Context, v pricing.Variant) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.PlanURL(v), nil)
	if err != nil {
		return nil, fmt.Errorf("build plan request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch plan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch plan: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read plan body: %w", err)
	}
	return body, nil
}

func (m *Merger) fallback() {
	if m.onFallback != nil {
		m.onFallback()
	}
}

// PageCount reports the number of pages in a PDF. Exposed for handlers and
// tests that assert on merge results.
func PageCount(pdf []byte) (int, error) {
	return api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
}
