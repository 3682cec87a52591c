package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/domain"
)

// RequireRole ensures the principal carries one of the allowed roles. With
// no arguments it only requires an authenticated caller.
func RequireRole(allowed ...domain.EmployeeRole) fiber.Handler {
	allowedSet := make(map[domain.EmployeeRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return RespondUnauthorized(c, "authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return RespondForbidden(c, "insufficient role")
		}
		return c.Next()
	}
}
