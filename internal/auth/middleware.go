package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/metering-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for one request.
type Principal struct {
	Username string
	Role     domain.EmployeeRole
	Token    string
}

// AllowList enumerates paths that bypass authentication. It is built once
// at startup and never mutated afterwards.
type AllowList struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewAllowList builds an allow-list from exact paths and path prefixes.
func NewAllowList(paths, prefixes []string) *AllowList {
	exact := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		exact[p] = struct{}{}
	}
	return &AllowList{exact: exact, prefixes: prefixes}
}

// Contains reports whether the path bypasses authentication.
func (a *AllowList) Contains(path string) bool {
	if _, ok := a.exact[path]; ok {
		return true
	}
	for _, prefix := range a.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Gate is the request-boundary filter: it extracts the bearer token,
// validates it, checks revocation and attaches the principal, or rejects
// the request before any handler runs.
type Gate struct {
	tokens  *TokenManager
	revoked RevocationStore
	allow   *AllowList
	logger  *zap.Logger
}

// NewGate constructs the middleware.
func NewGate(tokens *TokenManager, revoked RevocationStore, allow *AllowList, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, revoked: revoked, allow: allow, logger: logger}
}

// Handle enforces authentication for every route not on the allow-list.
func (g *Gate) Handle(c *fiber.Ctx) error {
	if g.allow.Contains(c.Path()) {
		// Pass-through: no principal is attached for public paths.
		return c.Next()
	}

	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return RespondUnauthorized(c, "missing bearer token")
	}

	claims, err := g.tokens.Validate(c.UserContext(), token)
	if err != nil {
		return g.reject(c, err)
	}

	revoked, err := g.revoked.IsRevoked(c.UserContext(), token)
	if err != nil {
		return g.reject(c, err)
	}
	if revoked {
		return g.reject(c, ErrRevoked)
	}

	c.Locals(principalKey, &Principal{
		Username: claims.Subject,
		Role:     claims.Role,
		Token:    token,
	})
	return c.Next()
}

func (g *Gate) reject(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrConfigUnavailable):
		g.logger.Error("auth dependency unavailable", zap.Error(err))
		return RespondUnavailable(c)
	case errors.Is(err, ErrExpired):
		return RespondUnauthorized(c, "token expired")
	case errors.Is(err, ErrRevoked):
		return RespondUnauthorized(c, "token revoked")
	case errors.Is(err, ErrBadSignature), errors.Is(err, ErrMalformedToken):
		return RespondUnauthorized(c, "invalid token")
	default:
		g.logger.Error("unexpected auth failure", zap.Error(err))
		return RespondInternal(c)
	}
}

// bearerToken extracts the raw token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
