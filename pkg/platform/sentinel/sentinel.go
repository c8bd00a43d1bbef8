package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into user-facing
// outcomes without string matching.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entry does not exist in the store
// - ErrExpired: verification code past its TTL
// - ErrLockedOut: attempt limit exhausted for the entry
// - ErrUnavailable: backing store or external API temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrLockedOut   = errors.New("locked out")
	ErrUnavailable = errors.New("unavailable")
)
