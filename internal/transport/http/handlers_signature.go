package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"propale/internal/docaccess"
	"propale/internal/signature"
	"propale/internal/signature/audit"
	"propale/internal/verification"
	dErrors "propale/pkg/domain-errors"
	"propale/pkg/email"
	"propale/pkg/platform/httputil"
	"propale/pkg/requestcontext"
)

// VerificationService issues and checks signature verification codes.
type VerificationService interface {
	Issue(ctx context.Context, addr, documentID, documentName string) (verification.IssueResult, error)
	Check(ctx context.Context, addr, documentID, code string) (verification.CheckResult, error)
}

// TicketMinter signs tickets for verified identities.
type TicketMinter interface {
	Mint(email, documentID, role string, now time.Time) (string, error)
}

// SignatureHandler serves code issuance and verification for the
// e-signature flow.
type SignatureHandler struct {
	logger   *slog.Logger
	verifier VerificationService
	tickets  TicketMinter
	recorder audit.Recorder
}

func NewSignatureHandler(verifier VerificationService, tickets TicketMinter, recorder audit.Recorder, logger *slog.Logger) *SignatureHandler {
	return &SignatureHandler{
		logger:   logger,
		verifier: verifier,
		tickets:  tickets,
		recorder: recorder,
	}
}

func (h *SignatureHandler) Register(r chi.Router) {
	r.Post("/signature/codes", h.handleIssueCode)
	r.Post("/signature/verifications", h.handleVerifyCode)
}

type issueCodeRequest struct {
	Email      string `json:"email"`
	DocumentID string `json:"documentId"`
}

type issueCodeResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message,omitempty"`
}

// handleIssueCode checks the caller is authorized for the document, then
// issues and emails a verification code.
func (h *SignatureHandler) handleIssueCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req issueCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.DocumentID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email and documentId are required"))
		return
	}

	if !docaccess.IsAuthorized(req.Email, req.DocumentID) {
		h.logger.WarnContext(ctx, "code requested for unauthorized pair",
			"request_id", requestcontext.RequestID(ctx),
			"document_id", req.DocumentID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "not authorized for this document"))
		return
	}

	name, _ := docaccess.DocumentName(req.DocumentID)
	res, err := h.verifier.Issue(ctx, req.Email, req.DocumentID, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "code issuance failed",
			"request_id", requestcontext.RequestID(ctx),
			"document_id", req.DocumentID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to issue code"))
		return
	}

	if !res.Delivered {
		httputil.WriteJSON(w, http.StatusBadGateway, issueCodeResponse{
			Sent:    false,
			Message: "send failed, please retry",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, issueCodeResponse{Sent: true})
}

type verifyCodeRequest struct {
	Email      string `json:"email"`
	DocumentID string `json:"documentId"`
	Code       string `json:"code"`
}

type verifyCodeResponse struct {
	Verified          bool   `json:"verified"`
	Message           string `json:"message"`
	AttemptsRemaining int    `json:"attemptsRemaining,omitempty"`
	Ticket            string `json:"ticket,omitempty"`
}

// handleVerifyCode runs one attempt against the stored code and mints a
// signature ticket on success.
func (h *SignatureHandler) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.DocumentID == "" || req.Code == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email, documentId and code are required"))
		return
	}

	res, err := h.verifier.Check(ctx, req.Email, req.DocumentID, req.Code)
	if err != nil {
		h.logger.ErrorContext(ctx, "code verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"document_id", req.DocumentID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to verify code"))
		return
	}

	switch res.Outcome {
	case verification.OutcomeOK:
		role, _ := docaccess.RoleFor(req.Email, req.DocumentID)
		now := requestcontext.Now(ctx)
		ticket, err := h.tickets.Mint(req.Email, req.DocumentID, string(role), now)
		if err != nil {
			h.logger.ErrorContext(ctx, "ticket minting failed",
				"request_id", requestcontext.RequestID(ctx),
				"document_id", req.DocumentID,
				"error", err.Error(),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to mint ticket"))
			return
		}
		event := audit.NewEvent(audit.EventTicketMinted, email.Normalize(req.Email), req.DocumentID, now)
		event.Device = audit.DeviceFromContext(ctx)
		h.recorder.Record(ctx, event)
		httputil.WriteJSON(w, http.StatusOK, verifyCodeResponse{
			Verified: true,
			Message:  res.Message,
			Ticket:   ticket,
		})
	case verification.OutcomeIncorrect:
		httputil.WriteJSON(w, http.StatusUnauthorized, verifyCodeResponse{
			Verified:          false,
			Message:           res.Message,
			AttemptsRemaining: res.AttemptsRemaining,
		})
	case verification.OutcomeTooManyAttempts:
		httputil.WriteJSON(w, http.StatusTooManyRequests, verifyCodeResponse{
			Verified: false,
			Message:  res.Message,
		})
	default:
		httputil.WriteJSON(w, http.StatusNotFound, verifyCodeResponse{
			Verified: false,
			Message:  res.Message,
		})
	}
}

var _ TicketMinter = (*signature.TicketService)(nil)
