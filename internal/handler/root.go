package handler

import "github.com/gofiber/fiber/v3"

// Version is reported by the root and health endpoints.
const Version = "1.1.0"

// Root handles GET /.
func Root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "TrustGuard AI Backend v" + Version,
		"status":  "running",
	})
}
