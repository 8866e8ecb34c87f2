package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"easyhousing_backend/pkg/utils/jwt"
)

// AuthMiddleware validates the bearer token and stores the claims in
// c.Locals("user") for downstream handlers.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := claimsFromHeader(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// OptionalAuth parses the token when one is present but never rejects
// the request. Handlers that tolerate anonymous callers use this.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := claimsFromHeader(c); err == nil {
			c.Locals("user", claims)
		}
		return c.Next()
	}
}

// RequireRole gates a route group on the caller's user type. It must run
// after AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*jwt.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing token",
			})
		}

		if claims.UserType != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this resource",
			})
		}

		return c.Next()
	}
}

func claimsFromHeader(c *fiber.Ctx) (*jwt.Claims, error) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, fiber.ErrUnauthorized
	}

	return jwt.ValidateToken(strings.TrimPrefix(auth, "Bearer "))
}
