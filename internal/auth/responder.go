package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
)

// The rejection bodies are fixed per failure class. Nothing from the
// underlying error ever reaches the caller.

// RespondUnauthorized writes the structured 401 envelope.
func RespondUnauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(dto.Envelope{
		Success: false,
		Message: message,
		Code:    http.StatusUnauthorized,
	})
}

// RespondForbidden writes the structured 403 envelope.
func RespondForbidden(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusForbidden).JSON(dto.Envelope{
		Success: false,
		Message: message,
		Code:    http.StatusForbidden,
	})
}

// RespondUnavailable writes the 503 envelope used when an auth dependency
// cannot be reached.
func RespondUnavailable(c *fiber.Ctx) error {
	return c.Status(http.StatusServiceUnavailable).JSON(dto.Envelope{
		Success: false,
		Message: "authentication temporarily unavailable",
		Code:    http.StatusServiceUnavailable,
	})
}

// RespondInternal writes the generic 500 envelope.
func RespondInternal(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(dto.Envelope{
		Success: false,
		Message: "internal server error",
		Code:    http.StatusInternalServerError,
	})
}
