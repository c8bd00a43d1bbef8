package store

import (
	"context"
	"fmt"
	"sync"

	"propale/internal/verification"
	"propale/pkg/platform/sentinel"
)

// Memory stores codes in a mutex-guarded map. Process-local and
// non-persistent: entries vanish on restart and are never shared across
// instances. Expired entries linger until the service's next lookup deletes
// them, which is the documented lifecycle, not a leak fix waiting to happen.
type Memory struct {
	mu      sync.RWMutex
	records map[string]verification.Record
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]verification.Record)}
}

func (s *Memory) Put(_ context.Context, rec verification.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[Key(rec.Email, rec.DocumentID)] = rec
	return nil
}

func (s *Memory) Get(_ context.Context, email, documentID string) (verification.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[Key(email, documentID)]
	if !ok {
		return verification.Record{}, fmt.Errorf("verification code: %w", sentinel.ErrNotFound)
	}
	return rec, nil
}

func (s *Memory) Update(_ context.Context, rec verification.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(rec.Email, rec.DocumentID)
	if _, ok := s.records[key]; !ok {
		return fmt.Errorf("verification code: %w", sentinel.ErrNotFound)
	}
	s.records[key] = rec
	return nil
}

func (s *Memory) Delete(_ context.Context, email, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, Key(email, documentID))
	return nil
}

// Len reports the number of live entries (tests and debug).
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
