package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"propale/internal/signature"
	"propale/internal/signature/audit"
	"propale/internal/verification"
)

type fakeVerifier struct {
	issueRes   verification.IssueResult
	issueErr   error
	issueCalls []struct{ Email, DocumentID, DocumentName string }

	checkRes verification.CheckResult
	checkErr error
}

func (f *fakeVerifier) Issue(_ context.Context, addr, documentID, documentName string) (verification.IssueResult, error) {
	f.issueCalls = append(f.issueCalls, struct{ Email, DocumentID, DocumentName string }{addr, documentID, documentName})
	return f.issueRes, f.issueErr
}

func (f *fakeVerifier) Check(context.Context, string, string, string) (verification.CheckResult, error) {
	return f.checkRes, f.checkErr
}

type captureRecorder struct {
	events []audit.Event
}

func (c *captureRecorder) Record(_ context.Context, e audit.Event) {
	c.events = append(c.events, e)
}

type SignatureHandlerSuite struct {
	suite.Suite

	verifier *fakeVerifier
	recorder *captureRecorder
	router   chi.Router
}

func TestSignatureHandlerSuite(t *testing.T) {
	suite.Run(t, new(SignatureHandlerSuite))
}

func (s *SignatureHandlerSuite) SetupTest() {
	s.verifier = &fakeVerifier{}
	s.recorder = &captureRecorder{}
	h := NewSignatureHandler(
		s.verifier,
		signature.NewTicketService("test-signing-key"),
		s.recorder,
		slog.New(slog.DiscardHandler),
	)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *SignatureHandlerSuite) post(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *SignatureHandlerSuite) TestIssueCode() {
	s.verifier.issueRes = verification.IssueResult{Delivered: true}

	rec := s.post("/signature/codes", issueCodeRequest{
		Email:      "contact@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
	})
	s.Equal(http.StatusCreated, rec.Code)

	var resp issueCodeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Sent)

	s.Require().Len(s.verifier.issueCalls, 1)
	s.Equal("Contrat de maîtrise d'œuvre", s.verifier.issueCalls[0].DocumentName)
}

func (s *SignatureHandlerSuite) TestIssueCodeUnauthorizedPair() {
	rec := s.post("/signature/codes", issueCodeRequest{
		Email:      "stranger@example.com",
		DocumentID: "contrat-moe",
	})
	s.Equal(http.StatusForbidden, rec.Code)
	s.Empty(s.verifier.issueCalls)
}

func (s *SignatureHandlerSuite) TestIssueCodeWrongDocument() {
	// gerance@ is only on the avenant, not the contract.
	rec := s.post("/signature/codes", issueCodeRequest{
		Email:      "gerance@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
	})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *SignatureHandlerSuite) TestIssueCodeSendFailure() {
	s.verifier.issueRes = verification.IssueResult{Delivered: false}

	rec := s.post("/signature/codes", issueCodeRequest{
		Email:      "contact@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
	})
	s.Equal(http.StatusBadGateway, rec.Code)

	var resp issueCodeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.False(resp.Sent)
	s.Equal("send failed, please retry", resp.Message)
}

func (s *SignatureHandlerSuite) TestIssueCodeValidation() {
	rec := s.post("/signature/codes", issueCodeRequest{Email: "", DocumentID: "contrat-moe"})
	s.Equal(http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/signature/codes", bytes.NewReader([]byte("{not json")))
	raw := httptest.NewRecorder()
	s.router.ServeHTTP(raw, req)
	s.Equal(http.StatusBadRequest, raw.Code)
}

func (s *SignatureHandlerSuite) TestVerifySuccessMintsTicket() {
	s.verifier.checkRes = verification.CheckResult{
		Outcome: verification.OutcomeOK,
		Message: "code verified",
	}

	rec := s.post("/signature/verifications", verifyCodeRequest{
		Email:      "Contact@SCI-Les-Tilleuls.fr",
		DocumentID: "contrat-moe",
		Code:       "123456",
	})
	s.Equal(http.StatusOK, rec.Code)

	var resp verifyCodeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Verified)
	s.NotEmpty(resp.Ticket)

	claims, err := signature.NewTicketService("test-signing-key").Validate(resp.Ticket)
	s.Require().NoError(err)
	s.Equal("Contact@SCI-Les-Tilleuls.fr", claims.Email)
	s.Equal("contrat-moe", claims.DocumentID)
	s.Equal("client", claims.Role)

	s.Require().Len(s.recorder.events, 1)
	s.Equal(audit.EventTicketMinted, s.recorder.events[0].Type)
	s.Equal("contact@sci-les-tilleuls.fr", s.recorder.events[0].Email)
}

func (s *SignatureHandlerSuite) TestVerifyIncorrect() {
	s.verifier.checkRes = verification.CheckResult{
		Outcome:           verification.OutcomeIncorrect,
		AttemptsRemaining: 2,
		Message:           "incorrect code, 2 attempts remaining",
	}

	rec := s.post("/signature/verifications", verifyCodeRequest{
		Email:      "contact@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
		Code:       "000000",
	})
	s.Equal(http.StatusUnauthorized, rec.Code)

	var resp verifyCodeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.False(resp.Verified)
	s.Equal(2, resp.AttemptsRemaining)
	s.Empty(resp.Ticket)
	s.Empty(s.recorder.events)
}

func (s *SignatureHandlerSuite) TestVerifyTooManyAttempts() {
	s.verifier.checkRes = verification.CheckResult{
		Outcome: verification.OutcomeTooManyAttempts,
		Message: "too many attempts",
	}

	rec := s.post("/signature/verifications", verifyCodeRequest{
		Email:      "contact@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
		Code:       "000000",
	})
	s.Equal(http.StatusTooManyRequests, rec.Code)
}

func (s *SignatureHandlerSuite) TestVerifyNotFound() {
	s.verifier.checkRes = verification.CheckResult{
		Outcome: verification.OutcomeNotFound,
		Message: "not found",
	}

	rec := s.post("/signature/verifications", verifyCodeRequest{
		Email:      "contact@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
		Code:       "000000",
	})
	s.Equal(http.StatusNotFound, rec.Code)

	var resp verifyCodeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("not found", resp.Message)
}

func (s *SignatureHandlerSuite) TestVerifyValidation() {
	rec := s.post("/signature/verifications", verifyCodeRequest{
		Email:      "contact@sci-les-tilleuls.fr",
		DocumentID: "contrat-moe",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}
