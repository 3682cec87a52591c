package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationMonotonic(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)))

	for i := 0; i < 10; i++ {
		revoked, err = store.IsRevoked(ctx, "tok-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	}

	// Revoking again is a no-op.
	require.NoError(t, store.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryRevocationOtherTokensUnaffected(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevocationSweepsExpiredEntries(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "short", now.Add(time.Minute)))
	require.NoError(t, store.Revoke(ctx, "long", now.Add(time.Hour)))
	assert.Equal(t, 2, store.Len())

	// After the short token's expiry and the sweep interval, a revoke
	// drops it. The long entry survives.
	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Revoke(ctx, "other", now.Add(time.Hour)))
	assert.Equal(t, 2, store.Len())

	revoked, err := store.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryRevocationConcurrent(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)

	const readers = 8
	const writers = 4
	const tokensPerWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < tokensPerWriter; i++ {
				token := fmt.Sprintf("writer-%d-token-%d", w, i)
				if err := store.Revoke(ctx, token, expiresAt); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for i := 0; i < tokensPerWriter; i++ {
				token := fmt.Sprintf("reader-%d-token-%d", r, i)
				if _, err := store.IsRevoked(ctx, token); err != nil {
					t.Error(err)
					return
				}
			}
		}(r)
	}
	wg.Wait()

	// No revoke may be lost.
	assert.Equal(t, writers*tokensPerWriter, store.Len())
	for w := 0; w < writers; w++ {
		for i := 0; i < tokensPerWriter; i++ {
			token := fmt.Sprintf("writer-%d-token-%d", w, i)
			revoked, err := store.IsRevoked(ctx, token)
			require.NoError(t, err)
			require.True(t, revoked, "lost revoke for %s", token)
		}
	}
}

func TestRevocationKeyIsStable(t *testing.T) {
	assert.Equal(t, revocationKey("tok"), revocationKey("tok"))
	assert.NotEqual(t, revocationKey("tok"), revocationKey("tok2"))
	assert.Contains(t, revocationKey("tok"), revocationKeyPrefix)
}
