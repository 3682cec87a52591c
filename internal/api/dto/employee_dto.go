package dto

import "time"

// EmployeeCreateRequest payload for registering an operator account.
type EmployeeCreateRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// EmployeeResponse is the wire shape of an employee; the hash never leaves
// the server.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
