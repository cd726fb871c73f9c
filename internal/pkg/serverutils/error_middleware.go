package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware guarantees a well-formed JSON error body even when
// a handler panics. Tool errors are handled downstream; this is the last
// resort.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Erro desconhecido"))
			}
		}()
		return ctx.Next()
	}
}
