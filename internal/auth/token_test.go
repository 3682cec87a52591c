package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/metering-service/internal/domain"
)

var testMaterial = SigningMaterial{Secret: []byte("unit-test-signing-secret"), TTL: time.Hour}

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	return NewTokenManager(&staticSource{material: testMaterial})
}

func TestIssueValidateRoundTrip(t *testing.T) {
	tm := newTestManager(t)
	ctx := context.Background()

	token, expiresAt, err := tm.Issue(ctx, "alice", domain.RoleOperator)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, domain.RoleOperator, claims.Role)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestIssueEmptySubject(t *testing.T) {
	tm := newTestManager(t)

	_, _, err := tm.Issue(context.Background(), "", domain.RoleOperator)
	assert.Error(t, err)
}

func TestValidateExpiryBoundary(t *testing.T) {
	tm := newTestManager(t)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.clock = func() time.Time { return issuedAt }

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	tm.clock = func() time.Time { return issuedAt.Add(time.Hour - time.Millisecond) }
	_, err = tm.Validate(context.Background(), token)
	assert.NoError(t, err)

	tm.clock = func() time.Time { return issuedAt.Add(time.Hour + time.Millisecond) }
	_, err = tm.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateTamperedSignature(t *testing.T) {
	tm := newTestManager(t)

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Validate(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestValidateTamperedPayload(t *testing.T) {
	tm := newTestManager(t)

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = tm.Validate(context.Background(), tampered)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestValidateMalformed(t *testing.T) {
	tm := newTestManager(t)

	for _, garbage := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := tm.Validate(context.Background(), garbage)
		assert.ErrorIs(t, err, ErrMalformedToken, "input %q", garbage)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	tm := newTestManager(t)

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	other := NewTokenManager(&staticSource{material: SigningMaterial{
		Secret: []byte("a-different-secret"),
		TTL:    time.Hour,
	}})
	_, err = other.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestRotationInvalidatesOldTokens(t *testing.T) {
	source := &staticSource{material: testMaterial}
	tm := NewTokenManager(source)

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	// Rotate the secret in the source; the same manager must pick it up
	// on the very next call because material is resolved per call.
	source.material = SigningMaterial{Secret: []byte("rotated"), TTL: time.Hour}

	_, err = tm.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrBadSignature)

	fresh, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)
	_, err = tm.Validate(context.Background(), fresh)
	assert.NoError(t, err)
}

func TestMaterialSourceFailure(t *testing.T) {
	tm := NewTokenManager(&staticSource{err: ErrConfigUnavailable})

	_, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	assert.ErrorIs(t, err, ErrConfigUnavailable)

	_, err = tm.Validate(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrConfigUnavailable)
}
