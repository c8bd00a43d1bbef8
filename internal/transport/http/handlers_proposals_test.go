package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"propale/internal/document"
	"propale/internal/pricing"
)

type fakeRenderer struct {
	out      []byte
	err      error
	rendered []*document.Document
}

func (f *fakeRenderer) Render(_ context.Context, doc *document.Document) ([]byte, error) {
	f.rendered = append(f.rendered, doc)
	return f.out, f.err
}

type fakeMerger struct {
	out   []byte
	calls int
}

// MergeWithPlan returns the configured merge output, or the proposal
// unchanged when none is configured (the fallback contract).
func (f *fakeMerger) MergeWithPlan(_ context.Context, proposal []byte, _ pricing.Variant) []byte {
	f.calls++
	if f.out == nil {
		return proposal
	}
	return f.out
}

type ProposalHandlerSuite struct {
	suite.Suite

	renderer *fakeRenderer
	merger   *fakeMerger
	router   chi.Router
}

func TestProposalHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProposalHandlerSuite))
}

func (s *ProposalHandlerSuite) SetupTest() {
	s.renderer = &fakeRenderer{out: []byte("%PDF-1.3 fake")}
	s.merger = &fakeMerger{}
	h := NewProposalHandler(s.renderer, s.merger, slog.New(slog.DiscardHandler), nil)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *ProposalHandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ProposalHandlerSuite) TestProposalPDF() {
	rec := s.get("/proposals/coliving/pdf")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/pdf", rec.Header().Get("Content-Type"))
	s.Equal(`inline; filename="proposition-coliving.pdf"`, rec.Header().Get("Content-Disposition"))
	s.Equal("%PDF-1.3 fake", rec.Body.String())
	s.Zero(s.merger.calls)
}

func (s *ProposalHandlerSuite) TestProposalVariants() {
	for _, variant := range []string{"coliving", "logements"} {
		rec := s.get("/proposals/" + variant + "/pdf")
		s.Equal(http.StatusOK, rec.Code)
	}
	s.Require().Len(s.renderer.rendered, 2)
	s.NotEqual(s.renderer.rendered[0].Cover.Subtitle, s.renderer.rendered[1].Cover.Subtitle)
}

func (s *ProposalHandlerSuite) TestUnknownVariant() {
	rec := s.get("/proposals/villa/pdf")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"not_found","error_description":"unknown proposal variant"}`, rec.Body.String())
}

func (s *ProposalHandlerSuite) TestProposalWithPlan() {
	s.merger.out = []byte("%PDF-1.3 merged with plan")

	rec := s.get("/proposals/coliving/pdf?plan=1")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.merger.calls)
	s.Equal(`inline; filename="proposition-coliving-plans.pdf"`, rec.Header().Get("Content-Disposition"))
	s.Equal("%PDF-1.3 merged with plan", rec.Body.String())
}

func (s *ProposalHandlerSuite) TestPlanFallbackKeepsPlainFilename() {
	// merger returns the proposal untouched -> no plans suffix
	rec := s.get("/proposals/coliving/pdf?plan=1")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.merger.calls)
	s.Equal(`inline; filename="proposition-coliving.pdf"`, rec.Header().Get("Content-Disposition"))
}

func (s *ProposalHandlerSuite) TestRenderFailure() {
	s.renderer.err = errors.New("font table corrupted")

	rec := s.get("/proposals/coliving/pdf")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"internal_error"}`, rec.Body.String())
}

func (s *ProposalHandlerSuite) TestComparative() {
	rec := s.get("/proposals/comparative/pdf")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(`inline; filename="comparatif-solutions.pdf"`, rec.Header().Get("Content-Disposition"))
	s.Require().Len(s.renderer.rendered, 1)
}
