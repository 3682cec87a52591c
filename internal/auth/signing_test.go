package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) [32]byte {
	var key [32]byte
	for i := range key {
		key[i] = b
	}
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := testKey(0x42)

	sealed, err := SealSecret(key, []byte("super-secret-value"))
	require.NoError(t, err)

	plaintext, err := OpenSecret(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, "super-secret-value", string(plaintext))
}

func TestOpenSecretWrongKey(t *testing.T) {
	sealed, err := SealSecret(testKey(0x42), []byte("super-secret-value"))
	require.NoError(t, err)

	_, err = OpenSecret(testKey(0x43), sealed)
	assert.Error(t, err)
}

func TestOpenSecretGarbage(t *testing.T) {
	_, err := OpenSecret(testKey(0x42), "not base64 at all!!!")
	assert.Error(t, err)

	_, err = OpenSecret(testKey(0x42), "c2hvcnQ=")
	assert.Error(t, err)
}

func TestParseSecretboxKey(t *testing.T) {
	_, err := ParseSecretboxKey("")
	assert.Error(t, err)

	_, err = ParseSecretboxKey("dG9vLXNob3J0")
	assert.Error(t, err)

	// 32 bytes of zeros.
	key, err := ParseSecretboxKey("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	require.NoError(t, err)
	assert.Equal(t, [32]byte{}, key)
}

type staticSource struct {
	material SigningMaterial
	err      error
	calls    int
}

func (s *staticSource) Material(context.Context) (SigningMaterial, error) {
	s.calls++
	if s.err != nil {
		return SigningMaterial{}, s.err
	}
	return s.material, nil
}

func TestCachedMaterialSourceRotationVisibility(t *testing.T) {
	source := &staticSource{material: SigningMaterial{Secret: []byte("old"), TTL: time.Hour}}
	cached := NewCachedMaterialSource(source, 5*time.Second)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return now }

	material, err := cached.Material(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), material.Secret)
	assert.Equal(t, 1, source.calls)

	// Rotate the underlying secret; within the cache ttl the old value
	// is still served.
	source.material.Secret = []byte("new")
	now = now.Add(2 * time.Second)

	material, err = cached.Material(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), material.Secret)
	assert.Equal(t, 1, source.calls)

	// One ttl after the first fetch the rotation must be visible.
	now = now.Add(4 * time.Second)

	material, err = cached.Material(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), material.Secret)
	assert.Equal(t, 2, source.calls)
}

func TestCachedMaterialSourceZeroTTLPassesThrough(t *testing.T) {
	source := &staticSource{material: SigningMaterial{Secret: []byte("s"), TTL: time.Hour}}
	cached := NewCachedMaterialSource(source, 0)

	for i := 0; i < 3; i++ {
		_, err := cached.Material(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, source.calls)
}

func TestCachedMaterialSourceDoesNotCacheErrors(t *testing.T) {
	source := &staticSource{err: ErrConfigUnavailable}
	cached := NewCachedMaterialSource(source, 5*time.Second)

	_, err := cached.Material(context.Background())
	assert.ErrorIs(t, err, ErrConfigUnavailable)

	source.err = nil
	source.material = SigningMaterial{Secret: []byte("s"), TTL: time.Hour}

	material, err := cached.Material(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("s"), material.Secret)
}
