package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

const (
	ChatbotLimitMessage  = "Too many chatbot requests, please try again later."
	AnalysisLimitMessage = "Too many AI analysis requests, please try again later."
)

type RateLimitConfig struct {
	// Name scopes the counters so several limiters can share one store.
	Name    string
	Max     int
	Window  time.Duration
	Message string
}

// RateLimit caps requests per client address over a sliding window.
// Rejected requests never reach the next handler.
func RateLimit(cfg RateLimitConfig, store fiber.Storage, logger *zap.Logger) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return cfg.Name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Rate limit exceeded",
				zap.String("limiter", cfg.Name),
				zap.String("ip", c.IP()),
				zap.String("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   cfg.Message,
			})
		},
		Storage:           store,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
