package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ogc16/FitnessApp/pkg/utils"
)

// BearerToken returns the token from "Authorization: Bearer <token>", or ""
// when the header is missing or malformed.
func BearerToken(c *fiber.Ctx) string {
	parts := strings.Fields(c.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthRequired accepts tokens signed with secret. Supabase access tokens
// qualify when secret is the project's JWT secret.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		tokenString := BearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil || claims.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("access_token", tokenString)

		return c.Next()
	}
}
