package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wealthease-ai/internal/api"
	"wealthease-ai/internal/api/handlers"
	"wealthease-ai/internal/service"
	"wealthease-ai/pkg/config"
	"wealthease-ai/pkg/logger"
	"wealthease-ai/pkg/middleware"

	"go.uber.org/zap"
)

// Serves the single-endpoint chatbot binding as a plain net/http handler,
// the way serverless hosts mount it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

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
	aiHandler := handlers.NewAIHandler(chatbotService, nil, llmService, appLogger)

	limitStore := middleware.NewLimiterStore(cfg.RateLimit.StoreGCInterval)
	defer limitStore.Close()
	limiters := api.NewLimiters(cfg.RateLimit, limitStore, appLogger)

	fn := api.SetupFunction(aiHandler, limiters.Chat, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.FunctionHandler(fn),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("Chatbot function listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Function server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Function shutdown error", zap.Error(err))
	}
}
