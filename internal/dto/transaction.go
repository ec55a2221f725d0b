package dto

import (
	"encoding/json"

	"wealthease-ai/internal/models"
)

type ChatbotRequest struct {
	Message string `json:"message"`
}

// ChatbotResponse carries either a single ExtractedTransaction or a list in Data.
type ChatbotResponse struct {
	Success  bool   `json:"success"`
	Reply    string `json:"reply,omitempty"`
	Data     any    `json:"data,omitempty"`
	Multiple bool   `json:"multiple,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AnalyzeRequest keeps transactions raw so a non-array payload can be told
// apart from an empty one.
type AnalyzeRequest struct {
	Transactions json.RawMessage    `json:"transactions"`
	UserProfile  models.UserProfile `json:"userProfile"`
}

type AnalyzeResponse struct {
	Success     bool                   `json:"success"`
	Analysis    *models.AnalysisReport `json:"analysis"`
	RawResponse string                 `json:"rawResponse"`
	Timestamp   string                 `json:"timestamp"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	OpenAIConfigured bool   `json:"openaiConfigured"`
}

type FunctionStatusResponse struct {
	OK               bool   `json:"ok"`
	Service          string `json:"service"`
	Timestamp        string `json:"timestamp"`
	OpenAIConfigured bool   `json:"openaiConfigured"`
	Model            string `json:"model"`
}

type ProbeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
