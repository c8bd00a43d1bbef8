// Package verification issues and checks the short-lived, attempt-limited
// numeric codes gating the document signature action.
package verification

import (
	"time"
)

// MaxAttempts is how many verification attempts a code allows before the
// entry is discarded.
const MaxAttempts = 3

// Record is one live verification code, keyed by (email, documentID). The
// email key is stored normalized (lowercased); Attempts counts failed checks
// so far.
type Record struct {
	Email      string    `json:"email"`
	DocumentID string    `json:"document_id"`
	Code       string    `json:"code"`
	ExpiresAt  time.Time `json:"expires_at"`
	Attempts   int       `json:"attempts"`
}

// Expired reports whether the record is past its TTL at the given instant.
func (r Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Outcome classifies the result of a verification attempt.
type Outcome string

const (
	// OutcomeOK: the code matched; the entry is consumed.
	OutcomeOK Outcome = "ok"
	// OutcomeNotFound: no live code for the key (never issued, expired, or
	// already consumed/locked out).
	OutcomeNotFound Outcome = "not_found"
	// OutcomeTooManyAttempts: the attempt limit was exhausted; the entry is
	// discarded.
	OutcomeTooManyAttempts Outcome = "too_many_attempts"
	// OutcomeIncorrect: wrong code; the entry survives with one more failed
	// attempt on record.
	OutcomeIncorrect Outcome = "incorrect"
)

// CheckResult is the user-facing result of a verification attempt.
type CheckResult struct {
	Outcome Outcome
	// AttemptsRemaining is set for OutcomeIncorrect.
	AttemptsRemaining int
	// Message is the exact user-facing explanation.
	Message string
}

// IssueResult reports a send-request. Delivered is false when the email API
// refused the dispatch; the stored code stays valid either way and the
// caller is told to retry the send.
type IssueResult struct {
	Delivered bool
}
