package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"wealthease-ai/internal/models"
	"wealthease-ai/internal/repository"
	"wealthease-ai/internal/service"
	"wealthease-ai/pkg/config"
	"wealthease-ai/pkg/logger"
	"wealthease-ai/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	clientID := flag.String("client", "", "client ID to seed (a new one is generated when empty)")
	name := flag.String("name", "Demo User", "profile name")
	email := flag.String("email", "demo@wealthease.app", "profile email")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	namespace := uuid.New()
	if *clientID != "" {
		if namespace, err = uuid.Parse(*clientID); err != nil {
			appLogger.Fatal("Invalid client ID", zap.String("client", *clientID), zap.Error(err))
		}
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		appLogger.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	settingsService := service.NewSettingsService(repository.NewPostgresSettingsRepository(db, appLogger), appLogger)

	appLogger.Info("Starting settings seeding...", zap.String("client_id", namespace.String()))

	if err := seedProfile(ctx, settingsService, namespace, models.UserProfile{Name: *name, Email: *email}); err != nil {
		appLogger.Fatal("Failed to seed settings", zap.Error(err))
	}

	appLogger.Info("Settings seeding completed successfully!", zap.String("client_id", namespace.String()))
}

// seedProfile writes a logged-in profile with default avatar and preferences
// and empty domain collections.
func seedProfile(ctx context.Context, svc *service.SettingsService, namespace uuid.UUID, profile models.UserProfile) error {
	userData, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	values := []struct {
		key   models.SettingKey
		value string
	}{
		{models.KeyUserData, string(userData)},
		{models.KeyIsLoggedIn, "true"},
		{models.KeyTwoFactorEnabled, "false"},
		{models.KeyEmailNotifications, "true"},
		{models.KeyTransactions, "[]"},
		{models.KeyBills, "[]"},
		{models.KeyBudgets, "[]"},
		{models.KeyCategories, "[]"},
	}

	for _, v := range values {
		if err := svc.PutKey(ctx, namespace, v.key, v.value); err != nil {
			return err
		}
	}

	return svc.SetAvatar(ctx, namespace, models.DefaultAvatar)
}
