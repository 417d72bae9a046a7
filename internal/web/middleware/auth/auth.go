// Package auth provides the fiber middleware protecting authenticated
// API routes with bearer tokens.
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vikascatering/catering-admin/internal/auth"
)

// ClaimsLocal is the fiber.Locals key the validated claims are stored under.
const ClaimsLocal = "claims"

// New returns a middleware that extracts a bearer token from the
// Authorization header and rejects the request with 401 if it is absent or
// fails signature/expiry verification. Validated claims are stored in
// fiber.Locals for the downstream handler.
func New(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No token provided",
			})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		c.Locals(ClaimsLocal, claims)

		return c.Next()
	}
}

// Claims returns the validated claims stored by the middleware, or nil on
// an unprotected route.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocal).(*auth.Claims)
	return claims
}
