package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

// RequireAdmin rejects validated identities whose role is not admin.
// The token itself may be valid; this is a distinct authorization step.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return domain.ErrMissingToken
		}
		if !identity.IsAdmin() {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a validated identity is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return domain.ErrMissingToken
		}
		return c.Next()
	}
}
