package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/logger"
)

// Recovery turns handler panics into a 500 envelope.
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(c.UserContext(), "panic recovered",
					"panic", fmt.Sprint(r),
					"path", c.Path(),
					"stack", string(debug.Stack()),
				)
				err = abort(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}()
		return c.Next()
	}
}
