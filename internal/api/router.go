package api

import (
	"errors"

	"wealthease-ai/docs"
	"wealthease-ai/internal/api/handlers"
	"wealthease-ai/pkg/config"
	"wealthease-ai/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const msgInternalError = "Internal server error"

// Limiters are built once per process and shared by every route that
// counts against the same budget.
type Limiters struct {
	Chat     fiber.Handler
	Analysis fiber.Handler
}

func NewLimiters(cfg config.RateLimitConfig, store fiber.Storage, appLogger *zap.Logger) Limiters {
	return Limiters{
		Chat: middleware.RateLimit(middleware.RateLimitConfig{
			Name:    "chatbot",
			Max:     cfg.ChatMax,
			Window:  cfg.ChatWindow,
			Message: middleware.ChatbotLimitMessage,
		}, store, appLogger),
		Analysis: middleware.RateLimit(middleware.RateLimitConfig{
			Name:    "analysis",
			Max:     cfg.AnalysisMax,
			Window:  cfg.AnalysisWindow,
			Message: middleware.AnalysisLimitMessage,
		}, store, appLogger),
	}
}

func SetupRouter(
	aiHandler *handlers.AIHandler,
	settingsHandler *handlers.SettingsHandler,
	limiters Limiters,
	serverCfg config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: errorHandler(appLogger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.CORS())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// AI routes
	ai := app.Group("/api/ai")
	ai.Post("/chatbot", limiters.Chat, aiHandler.Chatbot)
	ai.Post("/analyze-transactions", limiters.Analysis, aiHandler.AnalyzeTransactions)
	ai.Get("/health", aiHandler.Health)
	ai.Post("/test", limiters.Analysis, aiHandler.TestConnection)

	// Root aliases share the limiter budgets of their /api/ai twins
	app.Post("/chatbot", limiters.Chat, aiHandler.Chatbot)
	app.Post("/analyze-transactions", limiters.Analysis, aiHandler.AnalyzeTransactions)
	app.Get("/health", aiHandler.Health)

	// Settings routes
	settings := app.Group("/api/settings/:clientID")
	settings.Get("", settingsHandler.GetSettings)
	settings.Put("/keys/:key", settingsHandler.PutSetting)
	settings.Put("/avatar", settingsHandler.SetAvatar)
	settings.Put("/preferences/:key", settingsHandler.SetPreference)
	settings.Post("/logout", settingsHandler.Logout)
	settings.Post("/clear-data", settingsHandler.ClearData)

	return app
}

// errorHandler keeps fiber's own status errors (404, 405) and hides the
// rest behind a generic 500.
func errorHandler(appLogger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"error":   fe.Message,
			})
		}

		appLogger.Error("Unhandled error",
			zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   msgInternalError,
		})
	}
}
