package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/domain"
)

type fakeEmployeeRepo struct {
	byUsername map[string]*domain.Employee
	updated    []*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byUsername: make(map[string]*domain.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	employee.ID = employee.Username
	r.byUsername[employee.Username] = employee
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	if _, ok := r.byUsername[employee.Username]; !ok {
		return pgx.ErrNoRows
	}
	r.byUsername[employee.Username] = employee
	r.updated = append(r.updated, employee)
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for _, e := range r.byUsername {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByUsername(_ context.Context, username string) (*domain.Employee, error) {
	if e, ok := r.byUsername[username]; ok {
		return e, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context, _, _ int) ([]*domain.Employee, error) {
	out := make([]*domain.Employee, 0, len(r.byUsername))
	for _, e := range r.byUsername {
		out = append(out, e)
	}
	return out, nil
}

type staticMaterialSource struct {
	material auth.SigningMaterial
}

func (s *staticMaterialSource) Material(context.Context) (auth.SigningMaterial, error) {
	return s.material, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeEmployeeRepo, *auth.MemoryRevocationStore) {
	t.Helper()

	repo := newFakeEmployeeRepo()
	hash, err := auth.HashPassword("opensesame", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.Employee{
		Username:     "alice",
		PasswordHash: hash,
		Role:         domain.RoleOperator,
		Active:       true,
	}))

	tokens := auth.NewTokenManager(&staticMaterialSource{material: auth.SigningMaterial{
		Secret: []byte("service-test-secret"),
		TTL:    time.Hour,
	}})
	store := auth.NewMemoryRevocationStore()

	svc := NewAuthService(AuthDependencies{
		Employees:  repo,
		Tokens:     tokens,
		Revoked:    store,
		BcryptCost: bcrypt.MinCost,
	})
	return svc, repo, store
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	token, expiresAt, err := svc.Login(context.Background(), "alice", "opensesame")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "x")
	assert.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	assert.True(t, auth.IsCredentialFailure(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.True(t, auth.IsCredentialFailure(err))
}

func TestLoginInactiveEmployee(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.byUsername["alice"].Active = false

	_, _, err := svc.Login(context.Background(), "alice", "opensesame")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, store := newTestAuthService(t)

	token, _, err := svc.Login(context.Background(), "alice", "opensesame")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	revoked, err := store.IsRevoked(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Logout is idempotent.
	require.NoError(t, svc.Logout(context.Background(), token))
}

func TestLogoutInvalidTokenIsNoop(t *testing.T) {
	svc, _, store := newTestAuthService(t)

	require.NoError(t, svc.Logout(context.Background(), "garbage"))
	assert.Equal(t, 0, store.Len())
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "alice", "wrong", "newpassword")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, "alice", "opensesame", "newpassword"))

	_, _, err = svc.Login(ctx, "alice", "opensesame")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "alice", "newpassword")
	assert.NoError(t, err)
}
