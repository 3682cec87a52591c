package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/repository"
	apperrors "github.com/spec-kit/metering-service/pkg/util"
)

// EmployeeService manages back-office accounts. All operations are
// admin-only at the route level.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	bcryptCost int
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, bcryptCost int) *EmployeeService {
	return &EmployeeService{employees: employees, bcryptCost: bcryptCost}
}

// Create registers a new employee with a hashed password.
func (s *EmployeeService) Create(ctx context.Context, username, fullName, password string, role domain.EmployeeRole) (*domain.Employee, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	if _, err := s.employees.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if !pgxNoRows(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// List returns a page of employees.
func (s *EmployeeService) List(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	return s.employees.List(ctx, normalizeLimit(limit), offset)
}

// Deactivate disables login for an employee. Outstanding tokens stay valid
// until expiry unless explicitly revoked.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return err
	}
	employee.Active = false
	return s.employees.Update(ctx, employee)
}

func pgxNoRows(err error) bool {
	return err == pgx.ErrNoRows
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
