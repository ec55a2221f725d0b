package service

import (
	"context"
	"time"

	"wealthease-ai/internal/models"

	"go.uber.org/zap"
)

type AnalysisResult struct {
	Report      *models.AnalysisReport
	RawResponse string
}

type AnalysisService struct {
	llm    *LLMService
	now    func() time.Time
	logger *zap.Logger
}

func NewAnalysisService(llm *LLMService, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		llm:    llm,
		now:    time.Now,
		logger: logger,
	}
}

func (s *AnalysisService) WithClock(now func() time.Time) *AnalysisService {
	s.now = now
	return s
}

// Analyze summarizes the history and asks the oracle for a report. An
// unusable verdict yields the fallback report, not an error.
func (s *AnalysisService) Analyze(ctx context.Context, history []models.Transaction, profile models.UserProfile) (*AnalysisResult, error) {
	if len(history) == 0 {
		return nil, &ValidationError{Message: "No transactions to analyze"}
	}
	if !s.llm.Configured() {
		return nil, ErrNotConfigured
	}

	summary := Summarize(history, profile, s.now())

	raw, err := s.llm.Invoke(ctx, AnalysisSystemPrompt, BuildAnalysisPrompt(summary), s.llm.AnalysisParams())
	if err != nil {
		return nil, err
	}

	report, err := ParseAnalysisReport(raw)
	if err != nil {
		s.logger.Warn("Analysis response rejected, using fallback report",
			zap.Error(err),
			zap.Int("raw_length", len(raw)),
		)
	}

	return &AnalysisResult{Report: report, RawResponse: raw}, nil
}
