package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wealthease-ai/internal/models"
	"wealthease-ai/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LogoutRedirect    = "login.html"
	ClearDataRedirect = "dashboard.html"
)

// SettingsView is what the settings page renders on load.
type SettingsView struct {
	UserData           json.RawMessage
	UserAvatar         string
	TwoFactorEnabled   bool
	EmailNotifications bool
	IsLoggedIn         bool
	Keys               []models.SettingKey
}

type SettingsService struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
}

func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *SettingsService) GetView(ctx context.Context, namespace uuid.UUID) (*SettingsView, error) {
	settings, err := s.repo.List(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	view := &SettingsView{
		UserAvatar:         models.DefaultAvatar,
		EmailNotifications: true,
	}

	for _, st := range settings {
		view.Keys = append(view.Keys, st.Key)

		switch st.Key {
		case models.KeyUserData:
			view.UserData = json.RawMessage(st.Value)
		case models.KeyUser:
			if view.UserData == nil {
				view.UserData = json.RawMessage(st.Value)
			}
		case models.KeyUserAvatar:
			if st.Value != "" {
				view.UserAvatar = st.Value
			}
		case models.KeyTwoFactorEnabled:
			view.TwoFactorEnabled = st.Value == "true"
		case models.KeyEmailNotifications:
			view.EmailNotifications = st.Value != "false"
		case models.KeyIsLoggedIn:
			view.IsLoggedIn = st.Value == "true"
		}
	}

	return view, nil
}

// PutKey stores a raw value after checking it against the key's class.
func (s *SettingsService) PutKey(ctx context.Context, namespace uuid.UUID, key models.SettingKey, value string) error {
	value = sanitizeUTF8(value)
	if err := validateSetting(key, value); err != nil {
		return err
	}

	return s.repo.Put(ctx, &models.Setting{
		Namespace: namespace,
		Key:       key,
		Value:     value,
	})
}

func (s *SettingsService) SetAvatar(ctx context.Context, namespace uuid.UUID, avatar string) error {
	if avatar == "" {
		return &ValidationError{Message: "Please select an avatar first!"}
	}
	return s.PutKey(ctx, namespace, models.KeyUserAvatar, avatar)
}

func (s *SettingsService) SetPreference(ctx context.Context, namespace uuid.UUID, key models.SettingKey, enabled bool) error {
	if models.Classify(key) != models.KeyClassPreference {
		return fmt.Errorf("%w: %q is not a preference", ErrInvalidSettingKey, key)
	}
	return s.PutKey(ctx, namespace, key, strconv.FormatBool(enabled))
}

// Logout ends the session only; profile, avatar and data stay.
func (s *SettingsService) Logout(ctx context.Context, namespace uuid.UUID) ([]models.SettingKey, error) {
	removed, err := s.repo.Delete(ctx, namespace, models.KeyIsLoggedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Info("Client logged out", zap.String("namespace", namespace.String()))
	return removed, nil
}

// ClearData removes every stored domain key and nothing else.
func (s *SettingsService) ClearData(ctx context.Context, namespace uuid.UUID) ([]models.SettingKey, error) {
	removed, err := s.repo.Delete(ctx, namespace, models.DomainKeys()...)
	if err != nil {
		return nil, fmt.Errorf("failed to clear data: %w", err)
	}

	s.logger.Info("Client data cleared",
		zap.String("namespace", namespace.String()),
		zap.Int("removed", len(removed)),
	)
	return removed, nil
}

func validateSetting(key models.SettingKey, value string) error {
	switch models.Classify(key) {
	case models.KeyClassUnknown:
		return fmt.Errorf("%w: %q", ErrInvalidSettingKey, key)
	case models.KeyClassPreference, models.KeyClassSession:
		if value != "true" && value != "false" {
			return &ValidationError{Message: fmt.Sprintf("%s must be true or false", key)}
		}
	case models.KeyClassDomain:
		if !json.Valid([]byte(value)) {
			return &ValidationError{Message: fmt.Sprintf("%s must be valid JSON", key)}
		}
	case models.KeyClassProfile:
		if key != models.KeyUserAvatar && !json.Valid([]byte(value)) {
			return &ValidationError{Message: fmt.Sprintf("%s must be valid JSON", key)}
		}
	}
	return nil
}

