package dto

import "encoding/json"

type SettingsResponse struct {
	UserData           json.RawMessage `json:"userData,omitempty"`
	UserAvatar         string          `json:"userAvatar"`
	TwoFactorEnabled   bool            `json:"twoFactorEnabled"`
	EmailNotifications bool            `json:"emailNotifications"`
	IsLoggedIn         bool            `json:"isLoggedIn"`
	Keys               []string        `json:"keys"`
}

type PutSettingRequest struct {
	Value string `json:"value"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar"`
}

type PreferenceRequest struct {
	Enabled bool `json:"enabled"`
}

type SettingsActionResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	RemovedKeys []string `json:"removedKeys,omitempty"`
	Redirect    string   `json:"redirect,omitempty"`
}
