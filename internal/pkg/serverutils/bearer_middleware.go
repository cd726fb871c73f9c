package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// BearerMiddleware guards a route with an exact-match shared secret. The
// token is opaque: no claims, no expiry, just equality.
func BearerMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Unauthorized. Bearer token required."))
		}
		token := authHeader[7:]

		if secret == "" || token != secret {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Unauthorized. Bearer token required."))
		}
		return ctx.Next()
	}
}
