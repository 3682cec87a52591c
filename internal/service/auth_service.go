package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/repository"
)

// AuthService coordinates login, logout and password changes.
type AuthService struct {
	employees     repository.EmployeeRepository
	tokens        *auth.TokenManager
	revoked       auth.RevocationStore
	bcryptCost    int
	lookupTimeout time.Duration
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	Employees     repository.EmployeeRepository
	Tokens        *auth.TokenManager
	Revoked       auth.RevocationStore
	BcryptCost    int
	LookupTimeout time.Duration
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	if deps.LookupTimeout <= 0 {
		deps.LookupTimeout = 3 * time.Second
	}
	return &AuthService{
		employees:     deps.Employees,
		tokens:        deps.Tokens,
		revoked:       deps.Revoked,
		bcryptCost:    deps.BcryptCost,
		lookupTimeout: deps.LookupTimeout,
	}
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password return distinct sentinels for logging and tests; the
// transport layer must present both identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	employee, err := s.employees.GetByUsername(lookupCtx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, auth.ErrPrincipalNotFound
		}
		return "", time.Time{}, fmt.Errorf("%w: credential lookup: %v", auth.ErrConfigUnavailable, err)
	}
	if !employee.Active {
		return "", time.Time{}, auth.ErrInvalidCredentials
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return "", time.Time{}, auth.ErrInvalidCredentials
	}

	return s.tokens.Issue(ctx, employee.Username, employee.Role)
}

// Logout revokes the presented token. Tokens that no longer validate have
// nothing to revoke, so logout stays idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrConfigUnavailable) {
			return err
		}
		return nil
	}
	return s.revoked.Revoke(ctx, token, claims.ExpiresAt.Time)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	employee, err := s.employees.GetByUsername(lookupCtx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.ErrPrincipalNotFound
		}
		return fmt.Errorf("%w: credential lookup: %v", auth.ErrConfigUnavailable, err)
	}
	if err := auth.ComparePassword(employee.PasswordHash, currentPassword); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	employee.PasswordHash = hash
	return s.employees.Update(ctx, employee)
}
