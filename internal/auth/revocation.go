package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	revocationKeyPrefix = "auth:revoked:"
	sweepInterval       = time.Minute
)

// RevocationStore records tokens that must be rejected before their natural
// expiry. Membership is monotonic for the lifetime of an entry: once
// revoked, a token never validates again.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationStore is a mutex-guarded in-process set. It does not
// survive restarts and is not shared across instances; deployments that
// need either should use the redis-backed store instead. Entries are swept
// once their token has expired, since the expiry check rejects such tokens
// regardless of membership.
type MemoryRevocationStore struct {
	mu        sync.RWMutex
	revoked   map[string]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryRevocationStore builds an empty store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke implements RevocationStore. Idempotent.
func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[token] = expiresAt
	s.sweepLocked()
	return nil
}

// IsRevoked implements RevocationStore.
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.revoked[token]
	return ok, nil
}

// Len reports the number of live entries.
func (s *MemoryRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

func (s *MemoryRevocationStore) sweepLocked() {
	now := s.now()
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for token, expiresAt := range s.revoked {
		if !expiresAt.IsZero() && expiresAt.Before(now) {
			delete(s.revoked, token)
		}
	}
}

// RedisRevocationStore keeps revoked tokens in a shared redis set so that
// revocation is visible across instances and restarts. Keys carry the
// token's remaining lifetime as TTL. A store outage surfaces as
// ErrConfigUnavailable so the gate fails closed with 503 rather than
// accepting a possibly revoked token.
type RedisRevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocationStore builds a store over the given client.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, now: time.Now}
}

// Revoke implements RevocationStore.
func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if !expiresAt.IsZero() && ttl <= 0 {
		// Already past expiry; the time check rejects it anyway.
		return nil
	}
	if expiresAt.IsZero() {
		ttl = 0
	}
	if err := s.client.Set(ctx, revocationKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke: %v", ErrConfigUnavailable, err)
	}
	return nil
}

// IsRevoked implements RevocationStore.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: revocation check: %v", ErrConfigUnavailable, err)
	}
	return n > 0, nil
}

// revocationKey derives a fixed-length key from the raw token string.
func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revocationKeyPrefix + hex.EncodeToString(sum[:])
}
