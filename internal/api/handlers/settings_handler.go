package handlers

import (
	"errors"

	"wealthease-ai/internal/dto"
	"wealthease-ai/internal/models"
	"wealthease-ai/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings godoc
// @Summary Get settings
// @Description Profile, avatar, preferences and session state of one client
// @Tags settings
// @Produce json
// @Param clientID path string true "Client ID (UUID)"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/settings/{clientID} [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	namespace, err := getClientID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	view, err := h.settingsService.GetView(c.UserContext(), namespace)
	if err != nil {
		return h.internalError(c, "Failed to load settings", err)
	}

	return c.JSON(dto.SettingsResponse{
		UserData:           view.UserData,
		UserAvatar:         view.UserAvatar,
		TwoFactorEnabled:   view.TwoFactorEnabled,
		EmailNotifications: view.EmailNotifications,
		IsLoggedIn:         view.IsLoggedIn,
		Keys:               keyNames(view.Keys),
	})
}

// PutSetting godoc
// @Summary Store a setting
// @Description Stores a raw value under a known key; unknown keys are rejected
// @Tags settings
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID (UUID)"
// @Param key path string true "Setting key"
// @Param request body dto.PutSettingRequest true "Value"
// @Success 200 {object} dto.SettingsActionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/settings/{clientID}/keys/{key} [put]
func (h *SettingsHandler) PutSetting(c *fiber.Ctx) error {
	namespace, err := getClientID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	var req dto.PutSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	key := settingKey(c)
	if err := h.settingsService.PutKey(c.UserContext(), namespace, key, req.Value); err != nil {
		return h.settingsError(c, err)
	}

	return c.JSON(dto.SettingsActionResponse{
		Success: true,
		Message: "Setting saved",
	})
}

// SetAvatar godoc
// @Summary Save avatar
// @Tags settings
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID (UUID)"
// @Param request body dto.AvatarRequest true "Avatar"
// @Success 200 {object} dto.SettingsActionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/settings/{clientID}/avatar [put]
func (h *SettingsHandler) SetAvatar(c *fiber.Ctx) error {
	namespace, err := getClientID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	var req dto.AvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.settingsService.SetAvatar(c.UserContext(), namespace, req.Avatar); err != nil {
		return h.settingsError(c, err)
	}

	return c.JSON(dto.SettingsActionResponse{
		Success: true,
		Message: "✨ Avatar saved successfully!",
	})
}

// SetPreference godoc
// @Summary Toggle a preference
// @Tags settings
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID (UUID)"
// @Param key path string true "twoFactorEnabled or emailNotifications"
// @Param request body dto.PreferenceRequest true "Toggle"
// @Success 200 {object} dto.SettingsActionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/settings/{clientID}/preferences/{key} [put]
func (h *SettingsHandler) SetPreference(c *fiber.Ctx) error {
	namespace, err := getClientID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	var req dto.PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	key := settingKey(c)
	if err := h.settingsService.SetPreference(c.UserContext(), namespace, key, req.Enabled); err != nil {
		return h.settingsError(c, err)
	}

	return c.JSON(dto.SettingsActionResponse{
		Success: true,
		Message: "Preference saved",
	})
}

// Logout godoc
// @Summary Log out
// @Description Ends the session; profile, avatar and data are kept
// @Tags settings
// @Produce json
// @Param clientID path string true "Client ID (UUID)"
// @Success 200 {object} dto.SettingsActionResponse
// @Router /api/settings/{clientID}/logout [post]
func (h *SettingsHandler) Logout(c *fiber.Ctx) error {
	namespace, err := getClientID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	removed, err := h.settingsService.Logout(c.UserContext(), namespace)
	if err != nil {
		return h.internalError(c, "Failed to log out", err)
	}

	return c.JSON(dto.SettingsActionResponse{
		Success:     true,
		Message:     "👋 Logged out successfully!",
		RemovedKeys: keyNames(removed),
		Redirect:    service.LogoutRedirect,
	})
}

// ClearData godoc
// @Summary Clear transaction data
// @Description Removes transactions, bills, budgets and categories; keeps profile, preferences and session
// @Tags settings
// @Produce json
// @Param clientID path string true "Client ID (UUID)"
// @Success 200 {object} dto.SettingsActionResponse
// @Router /api/settings/{clientID}/clear-data [post]
func (h *SettingsHandler) ClearData(c *fiber.Ctx) error {
	namespace, err := getClientID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	removed, err := h.settingsService.ClearData(c.UserContext(), namespace)
	if err != nil {
		return h.internalError(c, "Failed to clear data", err)
	}

	return c.JSON(dto.SettingsActionResponse{
		Success:     true,
		Message:     "🗑️ All transaction data cleared successfully!",
		RemovedKeys: keyNames(removed),
		Redirect:    service.ClearDataRedirect,
	})
}

func (h *SettingsHandler) settingsError(c *fiber.Ctx, err error) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return fail(c, fiber.StatusBadRequest, validation.Message)
	case errors.Is(err, service.ErrInvalidSettingKey):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return h.internalError(c, "Failed to save setting", err)
}

func (h *SettingsHandler) internalError(c *fiber.Ctx, message string, err error) error {
	h.logger.Error(message, zap.String("client_id", c.Params("clientID")), zap.Error(err))
	return fail(c, fiber.StatusInternalServerError, message)
}

func getClientID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("clientID"))
}

// settingKey copies the key out of the request buffer, which fiber reuses
// once the handler returns.
func settingKey(c *fiber.Ctx) models.SettingKey {
	return models.SettingKey(utils.CopyString(c.Params("key")))
}

func keyNames(keys []models.SettingKey) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return names
}
