package domain

import "time"

// EmployeeRole enumerates back-office authority levels.
type EmployeeRole string

const (
	RoleAdmin    EmployeeRole = "ADMIN"
	RoleOperator EmployeeRole = "OPERATOR"
)

// Valid reports whether the role is one of the known values.
func (r EmployeeRole) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// Employee is the domain model for back-office operators who log in.
type Employee struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	Role         EmployeeRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
