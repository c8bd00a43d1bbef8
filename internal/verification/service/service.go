// Package service implements the verification-code lifecycle: issue a code,
// email it, check attempts against it, consume it.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"

	"propale/internal/mailer"
	"propale/internal/platform/metrics"
	"propale/internal/signature/audit"
	"propale/internal/verification"
	"propale/internal/verification/store"
	dErrors "propale/pkg/domain-errors"
	"propale/pkg/email"
	"propale/pkg/platform/sentinel"
	"propale/pkg/requestcontext"
)

const (
	companyName   = "Progineers"
	expiresInText = "10 minutes"
)

var tracer = otel.Tracer("propale/verification")

// Service drives the code state machine. The backing store and the mailer
// are interfaces so deployments pick memory vs Redis and console vs API
// without touching this logic.
type Service struct {
	store    store.Store
	mailer   mailer.Mailer
	logger   *slog.Logger
	metrics  *metrics.Metrics
	recorder audit.Recorder
	ttl      time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithRecorder(r audit.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithTTL overrides the 10-minute default (tests).
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func New(st store.Store, m mailer.Mailer, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("verification store is required")
	}
	if m == nil {
		return nil, errors.New("mailer is required")
	}

	svc := &Service{
		store:    st,
		mailer:   m,
		logger:   slog.New(slog.DiscardHandler),
		recorder: audit.Noop{},
		ttl:      10 * time.Minute,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Issue generates a fresh code for (email, document), overwriting any prior
// entry for the same pair, and dispatches it by email. A refused dispatch is
// reported through IssueResult.Delivered, not an error: the stored code
// stays valid and the caller simply retries the send, which mints a new code
// anyway.
func (s *Service) Issue(ctx context.Context, addr, documentID, documentName string) (verification.IssueResult, error) {
	ctx, span := tracer.Start(ctx, "verification.Issue")
	defer span.End()

	now := requestcontext.Now(ctx)

	code, err := generateCode()
	if err != nil {
		return verification.IssueResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "generate code")
	}

	rec := verification.Record{
		Email:      email.Normalize(addr),
		DocumentID: documentID,
		Code:       code,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return verification.IssueResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "store verification code")
	}
	if s.metrics != nil {
		s.metrics.CodesIssued.Inc()
	}

	msg := mailer.Message{
		ToEmail:      addr,
		ToName:       email.DisplayName(addr),
		DocumentName: documentName,
		Code:         code,
		ExpiresIn:    expiresInText,
		CompanyName:  companyName,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "verification email dispatch failed",
			"request_id", requestcontext.RequestID(ctx),
			"document_id", documentID,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.EmailSendFailures.Inc()
		}
		s.record(ctx, audit.EventCodeSendFailed, rec.Email, documentID, "", now)
		return verification.IssueResult{Delivered: false}, nil
	}

	s.record(ctx, audit.EventCodeIssued, rec.Email, documentID, "", now)
	return verification.IssueResult{Delivered: true}, nil
}

// Check runs one verification attempt through the state machine:
//
//	expired        -> entry removed, "not found"
//	absent         -> "not found"
//	match          -> entry consumed, success
//	mismatch, <3rd -> attempts recorded, "incorrect code, N attempts remaining"
//	mismatch, 3rd  -> entry removed, "too many attempts"
//
// The third consecutive wrong code removes the entry, so a fourth attempt
// lands on "not found". Only infrastructure failures surface as errors.
func (s *Service) Check(ctx context.Context, addr, documentID, code string) (verification.CheckResult, error) {
	ctx, span := tracer.Start(ctx, "verification.Check")
	defer span.End()

	now := requestcontext.Now(ctx)
	norm := email.Normalize(addr)

	result, err := s.check(ctx, norm, documentID, code, now)
	if err != nil {
		return verification.CheckResult{}, err
	}

	if s.metrics != nil {
		s.metrics.VerificationOutcomes.WithLabelValues(string(result.Outcome)).Inc()
	}
	s.record(ctx, audit.EventCodeChecked, norm, documentID, string(result.Outcome), now)
	return result, nil
}

func (s *Service) check(ctx context.Context, norm, documentID, code string, now time.Time) (verification.CheckResult, error) {
	rec, err := s.store.Get(ctx, norm, documentID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return notFound(), nil
	}
	if err != nil {
		return verification.CheckResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "load verification code")
	}

	// Lazy expiry: the entry only leaves the store when someone looks it up.
	if rec.Expired(now) {
		if err := s.store.Delete(ctx, norm, documentID); err != nil {
			return verification.CheckResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "expire verification code")
		}
		return notFound(), nil
	}

	rec.Attempts++

	if code == rec.Code {
		if err := s.store.Delete(ctx, norm, documentID); err != nil {
			return verification.CheckResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "consume verification code")
		}
		return verification.CheckResult{Outcome: verification.OutcomeOK, Message: "code verified"}, nil
	}

	if rec.Attempts >= verification.MaxAttempts {
		if err := s.store.Delete(ctx, norm, documentID); err != nil {
			return verification.CheckResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "discard verification code")
		}
		return verification.CheckResult{
			Outcome: verification.OutcomeTooManyAttempts,
			Message: "too many attempts",
		}, nil
	}

	if err := s.store.Update(ctx, rec); err != nil {
		return verification.CheckResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "record failed attempt")
	}

	remaining := verification.MaxAttempts - rec.Attempts
	return verification.CheckResult{
		Outcome:           verification.OutcomeIncorrect,
		AttemptsRemaining: remaining,
		Message:           fmt.Sprintf("incorrect code, %d attempts remaining", remaining),
	}, nil
}

func (s *Service) record(ctx context.Context, t audit.EventType, email, documentID, outcome string, at time.Time) {
	e := audit.NewEvent(t, email, documentID, at)
	e.Outcome = outcome
	e.Device = audit.DeviceFromContext(ctx)
	s.recorder.Record(ctx, e)
}

func notFound() verification.CheckResult {
	return verification.CheckResult{Outcome: verification.OutcomeNotFound, Message: "not found"}
}

// generateCode draws a uniformly random 6-digit code, leading zeros allowed.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
