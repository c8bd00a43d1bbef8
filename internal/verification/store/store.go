// Package store persists live verification codes.
//
// Error contract, shared by all implementations:
//   - Get returns sentinel.ErrNotFound (possibly wrapped) when no entry
//     exists for the key
//   - Put overwrites any prior entry for the same key
//   - Delete of an absent key is a no-op, not an error
//   - infrastructure failures come back wrapped with context
//
// The lifecycle (lazy expiry, attempt counting, consume-on-success) lives in
// the service; stores only hold records. The in-memory store is the
// single-instance default, the Redis store the shared deployment option.
package store

import (
	"context"

	"propale/internal/verification"
)

// Store is the narrow persistence interface the verification service needs.
type Store interface {
	Put(ctx context.Context, rec verification.Record) error
	Get(ctx context.Context, email, documentID string) (verification.Record, error)
	// Update persists mutated attempt counts without touching the TTL.
	Update(ctx context.Context, rec verification.Record) error
	Delete(ctx context.Context, email, documentID string) error
}

// Key builds the canonical store key. Callers pass the email already
// normalized; the document ID is used verbatim.
func Key(email, documentID string) string {
	return email + "|" + documentID
}
