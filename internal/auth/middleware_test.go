package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/domain"
)

func newGateApp(t *testing.T, tm *TokenManager, store RevocationStore) *fiber.App {
	t.Helper()

	allow := NewAllowList([]string{"/health/live"}, []string{"/docs"})
	gate := NewGate(tm, store, allow, zap.NewNop())

	app := fiber.New()
	app.Use(gate.Handle)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		_, hasPrincipal := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"principal": hasPrincipal})
	})
	app.Get("/docs/index.html", func(c *fiber.Ctx) error {
		return c.SendString("docs")
	})
	app.Get("/protected", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"subject": principal.Username, "role": principal.Role})
	})
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, bearer string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func decodeEnvelope(t *testing.T, body []byte) dto.Envelope {
	t.Helper()
	var envelope dto.Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestGateAllowListBypassesAuth(t *testing.T) {
	tm := newTestManager(t)
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	status, body := doRequest(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)
	// Pass-through must not attach a principal.
	assert.JSONEq(t, `{"principal":false}`, string(body))

	status, _ = doRequest(t, app, http.MethodGet, "/docs/index.html", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestGateMissingToken(t *testing.T) {
	tm := newTestManager(t)
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	status, body := doRequest(t, app, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	envelope := decodeEnvelope(t, body)
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusUnauthorized, envelope.Code)
}

func TestGateMalformedAuthorizationHeader(t *testing.T) {
	tm := newTestManager(t)
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateValidToken(t *testing.T) {
	tm := newTestManager(t)
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodGet, "/protected", token)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"subject":"alice","role":"OPERATOR"}`, string(body))
}

func TestGateExpiredToken(t *testing.T) {
	tm := newTestManager(t)
	issuedAt := time.Now().Add(-2 * time.Hour)
	tm.clock = func() time.Time { return issuedAt }

	token, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	tm.clock = time.Now
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	status, body := doRequest(t, app, http.MethodGet, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "token expired", decodeEnvelope(t, body).Message)
}

func TestGateRevokedToken(t *testing.T) {
	tm := newTestManager(t)
	store := NewMemoryRevocationStore()
	app := newGateApp(t, tm, store)

	token, expiresAt, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)

	status, _ := doRequest(t, app, http.MethodGet, "/protected", token)
	assert.Equal(t, http.StatusOK, status)

	require.NoError(t, store.Revoke(context.Background(), token, expiresAt))

	status, body := doRequest(t, app, http.MethodGet, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "token revoked", decodeEnvelope(t, body).Message)

	// A fresh token for another subject is unaffected.
	other, _, err := tm.Issue(context.Background(), "bob", domain.RoleOperator)
	require.NoError(t, err)
	status, _ = doRequest(t, app, http.MethodGet, "/protected", other)
	assert.Equal(t, http.StatusOK, status)
}

func TestGateConfigUnavailable(t *testing.T) {
	tm := NewTokenManager(&staticSource{err: ErrConfigUnavailable})
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	status, body := doRequest(t, app, http.MethodGet, "/protected", "some-token")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, http.StatusServiceUnavailable, decodeEnvelope(t, body).Code)
}

func TestRequireRole(t *testing.T) {
	tm := newTestManager(t)
	app := newGateApp(t, tm, NewMemoryRevocationStore())

	operator, _, err := tm.Issue(context.Background(), "alice", domain.RoleOperator)
	require.NoError(t, err)
	admin, _, err := tm.Issue(context.Background(), "root", domain.RoleAdmin)
	require.NoError(t, err)

	status, _ := doRequest(t, app, http.MethodGet, "/admin", operator)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodGet, "/admin", admin)
	assert.Equal(t, http.StatusOK, status)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"", "", false},
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Token abc", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.token, token, "header %q", tc.header)
	}
}
