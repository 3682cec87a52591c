package auth

import "errors"

// Sentinel errors for every way an authentication attempt can fail. They
// stay internal to the service: handlers and the gate convert them to wire
// responses exactly once, and the two credential failures share one
// external message so callers cannot probe for valid usernames.
var (
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedToken     = errors.New("malformed token")
	ErrBadSignature       = errors.New("invalid token signature")
	ErrExpired            = errors.New("token expired")
	ErrRevoked            = errors.New("token revoked")
	ErrConfigUnavailable  = errors.New("auth configuration unavailable")
)

// IsCredentialFailure reports whether err is one of the two login failures
// that must be indistinguishable externally.
func IsCredentialFailure(err error) bool {
	return errors.Is(err, ErrPrincipalNotFound) || errors.Is(err, ErrInvalidCredentials)
}
