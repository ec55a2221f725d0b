package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wealthease-ai/internal/api"
	"wealthease-ai/internal/api/handlers"
	"wealthease-ai/internal/repository"
	"wealthease-ai/internal/service"
	"wealthease-ai/pkg/config"
	"wealthease-ai/pkg/logger"
	"wealthease-ai/pkg/middleware"
	"wealthease-ai/pkg/postgres"

	"go.uber.org/zap"
)

// @title WealthEase AI API
// @version 1.0
// @description Transaction extraction, financial analysis and settings for WealthEase

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting WealthEase AI service")

	ctx := context.Background()

	// Settings storage
	var settingsRepo repository.SettingsRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			appLogger.Fatal("Failed to prepare database schema", zap.Error(err))
		}
		settingsRepo = repository.NewPostgresSettingsRepository(db, appLogger)
	} else {
		appLogger.Info("DB_ENABLED is not set, settings are kept in memory")
		settingsRepo = repository.NewMemorySettingsRepository()
	}

	// Initialize services
	llmService, err := service.NewLLMService(&cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	formatter, err := service.NewReplyFormatter(cfg.Reply)
	if err != nil {
		appLogger.Fatal("Failed to initialize reply formatter", zap.Error(err))
	}

	chatbotService := service.NewChatbotService(llmService, formatter, appLogger)
	analysisService := service.NewAnalysisService(llmService, appLogger)
	settingsService := service.NewSettingsService(settingsRepo, appLogger)

	// Initialize handlers
	aiHandler := handlers.NewAIHandler(chatbotService, analysisService, llmService, appLogger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, appLogger)

	// Rate limiting
	limitStore := middleware.NewLimiterStore(cfg.RateLimit.StoreGCInterval)
	defer limitStore.Close()
	limiters := api.NewLimiters(cfg.RateLimit, limitStore, appLogger)

	// Setup router
	app := api.SetupRouter(aiHandler, settingsHandler, limiters, cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting",
			zap.String("address", addr),
			zap.Bool("oracle_configured", llmService.Configured()),
		)
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
