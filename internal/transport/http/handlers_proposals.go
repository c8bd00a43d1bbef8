package httptransport

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"propale/internal/document"
	"propale/internal/pdfmerge"
	"propale/internal/platform/metrics"
	"propale/internal/pricing"
	dErrors "propale/pkg/domain-errors"
	"propale/pkg/platform/httputil"
	"propale/pkg/requestcontext"
)

// Renderer turns a document tree into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc *document.Document) ([]byte, error)
}

// PlanMerger appends the floor plan for a variant, degrading to the
// unmerged proposal when the plan cannot be fetched or merged.
type PlanMerger interface {
	MergeWithPlan(ctx context.Context, proposal []byte, v pricing.Variant) []byte
}

// ProposalHandler serves the proposal and comparative PDF exports.
type ProposalHandler struct {
	logger   *slog.Logger
	renderer Renderer
	merger   PlanMerger
	metrics  *metrics.Metrics
}

func NewProposalHandler(renderer Renderer, merger PlanMerger, logger *slog.Logger, m *metrics.Metrics) *ProposalHandler {
	return &ProposalHandler{
		logger:   logger,
		renderer: renderer,
		merger:   merger,
		metrics:  m,
	}
}

func (h *ProposalHandler) Register(r chi.Router) {
	r.Get("/proposals/comparative/pdf", h.handleComparative)
	r.Get("/proposals/{variant}/pdf", h.handleProposal)
}

// handleProposal renders one variant's full proposal. With ?plan=1 the
// matching floor plan is appended; a failed merge still serves the proposal.
func (h *ProposalHandler) handleProposal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	started := time.Now()

	variant, err := pricing.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown proposal variant"))
		return
	}

	cat := pricing.ForVariant(variant)
	doc := document.Build(cat, requestcontext.Now(ctx))

	pdf, err := h.renderer.Render(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "proposal render failed",
			"request_id", requestcontext.RequestID(ctx),
			"variant", string(variant),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to render proposal"))
		return
	}

	filename := doc.Filename
	if wantsPlan(r) {
		merged := h.merger.MergeWithPlan(ctx, pdf, variant)
		// The merger falls back to the untouched proposal when the plan is
		// unavailable; only an actual merge earns the plans filename.
		if !bytes.Equal(merged, pdf) {
			filename = fmt.Sprintf("proposition-%s-plans.pdf", variant)
		}
		pdf = merged
	}

	if h.metrics != nil {
		h.metrics.ProposalExports.WithLabelValues(string(variant)).Inc()
		h.metrics.ExportDurationSec.Observe(time.Since(started).Seconds())
	}
	httputil.WritePDF(w, filename, pdf)
}

// handleComparative renders the two-variant comparison document.
func (h *ProposalHandler) handleComparative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	started := time.Now()

	doc := document.BuildComparative(requestcontext.Now(ctx))
	pdf, err := h.renderer.Render(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "comparative render failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to render comparative"))
		return
	}

	if h.metrics != nil {
		h.metrics.ProposalExports.WithLabelValues("comparative").Inc()
		h.metrics.ExportDurationSec.Observe(time.Since(started).Seconds())
	}
	httputil.WritePDF(w, doc.Filename, pdf)
}

func wantsPlan(r *http.Request) bool {
	v := strings.ToLower(r.URL.Query().Get("plan"))
	return v == "1" || v == "true"
}

var _ PlanMerger = (*pdfmerge.Merger)(nil)
