package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/service"
)

// AuthHandler exposes login, logout and password change endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password required")
	}

	token, _, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		// Unknown username and wrong password share one body so the
		// endpoint cannot be used to enumerate accounts.
		if auth.IsCredentialFailure(err) {
			return auth.RespondUnauthorized(c, "authentication failed")
		}
		if errors.Is(err, auth.ErrConfigUnavailable) {
			return auth.RespondUnavailable(c)
		}
		return auth.RespondInternal(c)
	}

	return c.JSON(dto.Envelope{
		Success:  true,
		Message:  "authenticated",
		Code:     http.StatusOK,
		Response: "Bearer " + token,
	})
}

// Logout handles POST /api/v1/auth/logout. The gate has already validated
// the token and attached the principal.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.RespondUnauthorized(c, "authentication required")
	}

	if err := h.auth.Logout(c.UserContext(), principal.Token); err != nil {
		if errors.Is(err, auth.ErrConfigUnavailable) {
			return auth.RespondUnavailable(c)
		}
		return auth.RespondInternal(c)
	}

	return c.JSON(dto.Envelope{
		Success: true,
		Message: "logged out",
		Code:    http.StatusOK,
	})
}

// ChangePassword handles POST /api/v1/auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.RespondUnauthorized(c, "authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "current_password and new_password required")
	}

	err := h.auth.ChangePassword(c.UserContext(), principal.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if auth.IsCredentialFailure(err) {
			return auth.RespondUnauthorized(c, "authentication failed")
		}
		if errors.Is(err, auth.ErrConfigUnavailable) {
			return auth.RespondUnavailable(c)
		}
		return auth.RespondInternal(c)
	}

	return c.JSON(dto.Envelope{
		Success: true,
		Message: "password changed",
		Code:    http.StatusOK,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(dto.Envelope{
		Success: false,
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
