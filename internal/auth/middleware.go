package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens on protected routes. The
// identity is derived entirely from verified claims; no store lookup
// happens per request.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return domain.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.ErrInvalidToken
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return domain.ErrInvalidToken
	}

	c.Locals(identityKey, domain.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
