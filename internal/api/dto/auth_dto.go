package dto

// LoginRequest payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for POST /api/v1/auth/password/change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Envelope is the wire format for auth endpoints and gate rejections.
// Login success carries "Bearer <token>" in Response.
type Envelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Code     int    `json:"code"`
	Response any    `json:"response,omitempty"`
}
