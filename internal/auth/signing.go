package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/spec-kit/metering-service/internal/repository"
)

const nonceSize = 24

// SigningMaterial is the secret and token lifetime in force at one moment.
type SigningMaterial struct {
	Secret []byte
	TTL    time.Duration
}

// MaterialSource resolves the current signing material. Implementations are
// pull-based: callers re-resolve on every token operation so that a rotated
// secret or TTL takes effect without a restart.
type MaterialSource interface {
	Material(ctx context.Context) (SigningMaterial, error)
}

// ParameterSource reads signing material from a named system parameter,
// unsealing the secret on every read. Lookup failures and timeouts surface
// as ErrConfigUnavailable so they are never mistaken for a bad token.
type ParameterSource struct {
	params    repository.SystemParameterRepository
	paramName string
	key       [32]byte
	timeout   time.Duration
}

// NewParameterSource builds a source over the system_parameters table.
func NewParameterSource(params repository.SystemParameterRepository, paramName string, key [32]byte, timeout time.Duration) *ParameterSource {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &ParameterSource{params: params, paramName: paramName, key: key, timeout: timeout}
}

// Material implements MaterialSource.
func (s *ParameterSource) Material(ctx context.Context) (SigningMaterial, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	param, err := s.params.GetByName(ctx, s.paramName)
	if err != nil {
		return SigningMaterial{}, fmt.Errorf("%w: read %s: %v", ErrConfigUnavailable, s.paramName, err)
	}

	secret, err := OpenSecret(s.key, param.Value)
	if err != nil {
		return SigningMaterial{}, fmt.Errorf("%w: unseal %s: %v", ErrConfigUnavailable, s.paramName, err)
	}
	if param.TTLSeconds <= 0 {
		return SigningMaterial{}, fmt.Errorf("%w: %s has no ttl", ErrConfigUnavailable, s.paramName)
	}

	return SigningMaterial{
		Secret: secret,
		TTL:    time.Duration(param.TTLSeconds) * time.Second,
	}, nil
}

// CachedMaterialSource memoizes another source for a short window. A zero
// ttl disables caching entirely. Rotation becomes visible within one ttl.
type CachedMaterialSource struct {
	source MaterialSource
	ttl    time.Duration

	mu        sync.Mutex
	cached    SigningMaterial
	fetchedAt time.Time
	now       func() time.Time
}

// NewCachedMaterialSource wraps source with a ttl-bounded cache.
func NewCachedMaterialSource(source MaterialSource, ttl time.Duration) *CachedMaterialSource {
	return &CachedMaterialSource{source: source, ttl: ttl, now: time.Now}
}

// Material implements MaterialSource.
func (c *CachedMaterialSource) Material(ctx context.Context) (SigningMaterial, error) {
	if c.ttl <= 0 {
		return c.source.Material(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	material, err := c.source.Material(ctx)
	if err != nil {
		return SigningMaterial{}, err
	}
	c.cached = material
	c.fetchedAt = c.now()
	return material, nil
}

// SealSecret encrypts a plaintext secret for storage, prefixing a random
// nonce and encoding the whole box as base64.
func SealSecret(key [32]byte, plaintext []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenSecret decrypts a value produced by SealSecret.
func OpenSecret(key [32]byte, sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("decode sealed value: %w", err)
	}
	if len(raw) < nonceSize {
		return nil, fmt.Errorf("sealed value too short: %d bytes", len(raw))
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("secretbox open failed")
	}
	return plaintext, nil
}

// ParseSecretboxKey decodes a base64 key and checks its length.
func ParseSecretboxKey(encoded string) ([32]byte, error) {
	var key [32]byte
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return key, fmt.Errorf("decode secretbox key: %w", err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("secretbox key must be %d bytes, got %d", len(key), len(raw))
	}
	copy(key[:], raw)
	return key, nil
}
