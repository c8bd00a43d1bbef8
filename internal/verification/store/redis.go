package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"propale/internal/verification"
	"propale/pkg/platform/sentinel"
)

// Redis key prefix for verification codes.
const codeKeyPrefix = "vcode:"

// Redis is the shared-deployment store. Records carry their own ExpiresAt;
// the Redis TTL mirrors it so abandoned entries disappear server-side instead
// of waiting for a lookup.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed store. The client lifecycle is managed
// by the caller.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Put(ctx context.Context, rec verification.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal verification record: %w", err)
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		// Already expired: storing would create a key with no TTL.
		return nil
	}

	if err := s.client.Set(ctx, codeKeyPrefix+Key(rec.Email, rec.DocumentID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store verification record: %w", err)
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, email, documentID string) (verification.Record, error) {
	payload, err := s.client.Get(ctx, codeKeyPrefix+Key(email, documentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return verification.Record{}, fmt.Errorf("verification code: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return verification.Record{}, fmt.Errorf("load verification record: %w", err)
	}

	var rec verification.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return verification.Record{}, fmt.Errorf("decode verification record: %w", err)
	}
	return rec, nil
}

func (s *Redis) Update(ctx context.Context, rec verification.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal verification record: %w", err)
	}

	// KeepTTL preserves the expiry set at issue time.
	err = s.client.Set(ctx, codeKeyPrefix+Key(rec.Email, rec.DocumentID), payload, redis.KeepTTL).Err()
	if err != nil {
		return fmt.Errorf("update verification record: %w", err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, email, documentID string) error {
	if err := s.client.Del(ctx, codeKeyPrefix+Key(email, documentID)).Err(); err != nil {
		return fmt.Errorf("delete verification record: %w", err)
	}
	return nil
}
