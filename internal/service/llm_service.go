package service

import (
	"context"
	"fmt"
	"time"

	"wealthease-ai/pkg/config"

	"go.uber.org/zap"
)

const probeMaxTokens = 50

// Oracle is the opaque text-to-text model. Output is untrusted free text
// and always goes through RecoverJSON before use.
type Oracle interface {
	Invoke(ctx context.Context, systemPrompt, userText string, params InvokeParams) (string, error)
}

type InvokeParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// provider is an Oracle that owns network resources.
type provider interface {
	Oracle
	Close() error
}

// LLMService is the process-wide oracle handle. It is built once at startup
// and is read-only afterwards, so handlers share it freely.
type LLMService struct {
	provider provider
	config   *config.LLMConfig
	logger   *zap.Logger
}

func NewLLMService(cfg *config.LLMConfig, logger *zap.Logger) (*LLMService, error) {
	s := &LLMService{
		config: cfg,
		logger: logger,
	}

	if !cfg.Configured() {
		logger.Warn("Oracle API key not configured, AI endpoints will answer 500",
			zap.String("provider", cfg.Provider),
		)
		return s, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		s.provider = newOpenAIProvider(cfg)
	case config.ProviderGigaChat:
		s.provider = newGigaChatProvider(cfg, logger)
	case config.ProviderGemini:
		p, err := newGeminiProvider(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.provider = p
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}

	logger.Info("Oracle configured",
		zap.String("provider", cfg.Provider),
		zap.String("chat_model", cfg.ChatModel),
		zap.String("analysis_model", cfg.AnalysisModel),
	)

	return s, nil
}

// NewLLMServiceWithOracle wraps an existing Oracle, for alternative
// transports and tests.
func NewLLMServiceWithOracle(oracle Oracle, cfg *config.LLMConfig, logger *zap.Logger) *LLMService {
	return &LLMService{
		provider: nopCloser{oracle},
		config:   cfg,
		logger:   logger,
	}
}

type nopCloser struct {
	Oracle
}

func (nopCloser) Close() error { return nil }

func (s *LLMService) Configured() bool {
	return s.provider != nil
}

func (s *LLMService) ChatModel() string {
	return s.config.ChatModel
}

// ChatParams are the fixed decoding parameters of the extraction task.
func (s *LLMService) ChatParams() InvokeParams {
	return InvokeParams{
		Model:       s.config.ChatModel,
		Temperature: s.config.ChatTemperature,
		MaxTokens:   s.config.ChatMaxTokens,
	}
}

func (s *LLMService) AnalysisParams() InvokeParams {
	return InvokeParams{
		Model:       s.config.AnalysisModel,
		Temperature: s.config.AnalysisTemperature,
		MaxTokens:   s.config.AnalysisMaxTokens,
	}
}

// Invoke performs exactly one outbound call. Failures are returned as
// *UpstreamError; nothing is retried.
func (s *LLMService) Invoke(ctx context.Context, systemPrompt, userText string, params InvokeParams) (string, error) {
	if s.provider == nil {
		return "", ErrNotConfigured
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.provider.Invoke(ctx, systemPrompt, userText, params)
	if err != nil {
		s.logger.Error("Oracle call failed",
			zap.String("provider", s.config.Provider),
			zap.String("model", params.Model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("Oracle response received",
		zap.String("provider", s.config.Provider),
		zap.String("model", params.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("length", len(text)),
	)
	return text, nil
}

// Probe asks the analysis model for a fixed sentence and returns its answer.
func (s *LLMService) Probe(ctx context.Context) (string, error) {
	return s.Invoke(ctx, "", ConnectivityProbePrompt, InvokeParams{
		Model:       s.config.AnalysisModel,
		Temperature: s.config.AnalysisTemperature,
		MaxTokens:   probeMaxTokens,
	})
}

func (s *LLMService) Close() error {
	if s.provider != nil {
		return s.provider.Close()
	}
	return nil
}
