package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/metering-service/internal/domain"
)

// TokenManager issues and validates signed bearer tokens. Signing material
// is resolved through the source on every call; it is never held on the
// manager itself.
type TokenManager struct {
	source MaterialSource
	clock  func() time.Time
}

// NewTokenManager builds a manager over the given material source.
func NewTokenManager(source MaterialSource) *TokenManager {
	return &TokenManager{source: source, clock: time.Now}
}

// Claims describes the JWT payload.
type Claims struct {
	Role domain.EmployeeRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject.
func (tm *TokenManager) Issue(ctx context.Context, subject string, role domain.EmployeeRole) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("issue token: empty subject")
	}

	material, err := tm.source.Material(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	issuedAt := tm.clock()
	expiresAt := issuedAt.Add(material.TTL)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(material.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate parses the token, checks its signature against the current
// signing material and checks expiry. It does not consult the revocation
// store; the gate layers that check on top.
func (tm *TokenManager) Validate(ctx context.Context, tokenStr string) (*Claims, error) {
	material, err := tm.source.Material(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrBadSignature
		}
		return material.Secret, nil
	}, jwt.WithTimeFunc(tm.clock))
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}
	if claims.Subject == "" {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// classifyParseError folds golang-jwt's error set into the local taxonomy.
// Order matters: a tampered token must report as a signature failure, not a
// structural one.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrBadSignature):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformedToken
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
