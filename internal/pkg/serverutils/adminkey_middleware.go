// FILE: internal/pkg/serverutils/adminkey_middleware.go
package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyMiddleware guards admin routes with a shared X-Admin-Key header.
// An empty configured key disables the admin surface entirely.
func AdminKeyMiddleware(adminKey string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if adminKey == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("Admin API disabled"))
		}
		provided := ctx.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid admin key"))
		}
		return ctx.Next()
	}
}
