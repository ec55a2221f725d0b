package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	functionAllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	functionAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	})
}

// FunctionCORS stamps the single-endpoint headers on every response and
// leaves OPTIONS handling to the endpoint itself.
func FunctionCORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, functionAllowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, functionAllowHeaders)
		return c.Next()
	}
}
