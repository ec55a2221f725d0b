package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGigaChat = "gigachat"
	ProviderGemini   = "gemini"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	Reply     ReplyConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig holds the oracle credentials and decoding defaults.
// APIKey is the key of the selected provider; it may be empty, in which
// case every oracle-backed request fails with a configuration error.
type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string

	ChatModel     string
	AnalysisModel string

	ChatTemperature     float64
	ChatMaxTokens       int
	AnalysisTemperature float64
	AnalysisMaxTokens   int

	Timeout time.Duration

	GigaChatScope      string
	InsecureSkipVerify bool
}

// Configured reports whether the oracle has credentials.
func (c LLMConfig) Configured() bool {
	return c.APIKey != ""
}

type RateLimitConfig struct {
	ChatMax         int
	ChatWindow      time.Duration
	AnalysisMax     int
	AnalysisWindow  time.Duration
	StoreGCInterval time.Duration
}

type ReplyConfig struct {
	Locale   string
	Currency string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 60)
	llmTimeout := getEnvInt("LLM_TIMEOUT_SECONDS", 60)
	maxConns := getEnvInt("DB_MAX_CONNS", 4)

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	// OPENAI_MODEL overrides both pipelines, matching the single knob operators know.
	chatModel := getEnv("OPENAI_MODEL", "gpt-4o-mini")
	analysisModel := getEnv("OPENAI_MODEL", "gpt-3.5-turbo")
	switch provider {
	case ProviderGigaChat:
		chatModel = getEnv("GIGACHAT_MODEL", "GigaChat")
		analysisModel = chatModel
	case ProviderGemini:
		chatModel = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
		analysisModel = chatModel
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3001"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		LLM: LLMConfig{
			Provider:            provider,
			APIKey:              apiKeyFor(provider),
			BaseURL:             getEnv("OPENAI_BASE_URL", ""),
			ChatModel:           chatModel,
			AnalysisModel:       analysisModel,
			ChatTemperature:     0.3,
			ChatMaxTokens:       500,
			AnalysisTemperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
			AnalysisMaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 1500),
			Timeout:             time.Duration(llmTimeout) * time.Second,
			GigaChatScope:       getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify:  getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
		},
		RateLimit: RateLimitConfig{
			ChatMax:         getEnvInt("CHATBOT_RATE_LIMIT_MAX", 20),
			ChatWindow:      time.Duration(getEnvInt("CHATBOT_RATE_LIMIT_WINDOW_MINUTES", 5)) * time.Minute,
			AnalysisMax:     getEnvInt("ANALYSIS_RATE_LIMIT_MAX", 10),
			AnalysisWindow:  time.Duration(getEnvInt("ANALYSIS_RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
			StoreGCInterval: time.Minute,
		},
		Reply: ReplyConfig{
			Locale:   getEnv("REPLY_LOCALE", "en-US"),
			Currency: getEnv("REPLY_CURRENCY", "USD"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnv("DB_ENABLED", "false") == "true",
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "wealthease"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func apiKeyFor(provider string) string {
	switch provider {
	case ProviderGigaChat:
		return getEnv("GIGACHAT_API_KEY", "")
	case ProviderGemini:
		return getEnv("GEMINI_API_KEY", "")
	default:
		return getEnv("OPENAI_API_KEY", "")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back on missing, malformed and zero values alike.
func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v == 0 {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v == 0 {
		return defaultValue
	}
	return v
}
