package api

import (
	"net/http"

	"wealthease-ai/internal/api/handlers"
	"wealthease-ai/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// SetupFunction builds the single-endpoint binding: every path answers
// GET with a status document, OPTIONS with an empty 200, POST with the
// chatbot and anything else with 405.
func SetupFunction(aiHandler *handlers.AIHandler, chatLimiter fiber.Handler, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(appLogger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.FunctionCORS())

	app.Get("/*", aiHandler.FunctionStatus)
	app.Options("/*", aiHandler.Preflight)
	app.Post("/*", chatLimiter, aiHandler.Chatbot)
	app.All("/*", aiHandler.MethodNotAllowed)

	return app
}

// FunctionHandler exposes the binding to net/http hosts.
func FunctionHandler(app *fiber.App) http.HandlerFunc {
	return adaptor.FiberApp(app)
}
