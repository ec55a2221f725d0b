package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured     = errors.New("oracle API key not configured")
	ErrMalformedResponse = errors.New("malformed oracle response")
	ErrInvalidSettingKey = errors.New("invalid setting key")
	ErrNoTransaction     = errors.New("no transaction found in message")
)

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type UpstreamKind int

const (
	UpstreamUnknown UpstreamKind = iota
	UpstreamQuota
	UpstreamAuth
	UpstreamModel
)

func (k UpstreamKind) String() string {
	switch k {
	case UpstreamQuota:
		return "quota"
	case UpstreamAuth:
		return "auth"
	case UpstreamModel:
		return "model"
	default:
		return "unknown"
	}
}

// UpstreamError is a failed oracle call. Status is the provider's HTTP
// status when one was reported, 0 otherwise.
type UpstreamError struct {
	Kind    UpstreamKind
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("oracle %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("oracle %s error: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a provider status and error code onto an UpstreamKind.
func classifyStatus(status int, code string) UpstreamKind {
	switch code {
	case "insufficient_quota", "rate_limit_exceeded", "RESOURCE_EXHAUSTED":
		return UpstreamQuota
	case "invalid_api_key", "UNAUTHENTICATED", "PERMISSION_DENIED":
		return UpstreamAuth
	case "model_not_found", "NOT_FOUND":
		return UpstreamModel
	}
	switch status {
	case 429:
		return UpstreamQuota
	case 401, 403:
		return UpstreamAuth
	case 404:
		return UpstreamModel
	}
	return UpstreamUnknown
}
