package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ChatbotService struct {
	llm       *LLMService
	formatter *ReplyFormatter
	now       func() time.Time
	logger    *zap.Logger
}

func NewChatbotService(llm *LLMService, formatter *ReplyFormatter, logger *zap.Logger) *ChatbotService {
	return &ChatbotService{
		llm:       llm,
		formatter: formatter,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the source of "today".
func (s *ChatbotService) WithClock(now func() time.Time) *ChatbotService {
	s.now = now
	return s
}

// Extract runs one chat message through the extraction pipeline.
// Nothing extracted is reported as ErrNoTransaction.
func (s *ChatbotService) Extract(ctx context.Context, message string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Message: "Message is required"}
	}
	if !s.llm.Configured() {
		return nil, ErrNotConfigured
	}

	// Dates follow the UTC calendar day.
	today := s.now().UTC()

	raw, err := s.llm.Invoke(ctx, BuildExtractionPrompt(today), message, s.llm.ChatParams())
	if err != nil {
		return nil, err
	}

	payload, err := RecoverJSON(raw)
	if err != nil {
		s.logger.Warn("Could not recover JSON from chatbot response",
			zap.Error(err),
			zap.String("raw", raw),
		)
	}

	result := NormalizeExtraction(payload, today)
	if result.Empty() {
		return nil, ErrNoTransaction
	}

	s.logger.Info("Transactions extracted",
		zap.Int("count", len(result.Transactions)),
		zap.Bool("multiple", result.Multiple),
	)

	return s.formatter.Format(result), nil
}
