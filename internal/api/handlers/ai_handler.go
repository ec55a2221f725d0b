package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wealthease-ai/internal/dto"
	"wealthease-ai/internal/models"
	"wealthease-ai/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const (
	FunctionServiceName = "wealthease-chatbot"

	msgNotConfigured    = "OpenAI API key not configured"
	msgQuotaExceeded    = "OpenAI API quota exceeded. Please try again later."
	msgInvalidKey       = "Invalid OpenAI API key."
	msgNoTransaction    = `Sorry, I couldn't extract transaction data from your message. Please provide clearer details (e.g., "Bought coffee $5" or "Received salary $3,500").`
	msgChatFailed       = "An error occurred while processing your message. Please try again."
	msgInvalidTxData    = "Invalid transactions data"
	msgNoTransactions   = "No transactions to analyze"
	msgAnalysisFailed   = "Failed to analyze transactions"
	msgMethodNotAllowed = "Method not allowed"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type AIHandler struct {
	chatbot  *service.ChatbotService
	analysis *service.AnalysisService
	llm      *service.LLMService
	now      func() time.Time
	logger   *zap.Logger
}

func NewAIHandler(
	chatbot *service.ChatbotService,
	analysis *service.AnalysisService,
	llm *service.LLMService,
	logger *zap.Logger,
) *AIHandler {
	return &AIHandler{
		chatbot:  chatbot,
		analysis: analysis,
		llm:      llm,
		now:      time.Now,
		logger:   logger,
	}
}

// Chatbot godoc
// @Summary Extract transactions from a chat message
// @Description Turns an English or Indonesian sentence into one or more income/expense records
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ChatbotRequest true "Chat message"
// @Success 200 {object} dto.ChatbotResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/chatbot [post]
func (h *AIHandler) Chatbot(c *fiber.Ctx) error {
	var req dto.ChatbotRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Unreadable chatbot body", zap.Error(err))
	}

	reply, err := h.chatbot.Extract(c.UserContext(), req.Message)
	if err != nil {
		return h.chatbotError(c, err)
	}

	return c.JSON(dto.ChatbotResponse{
		Success:  true,
		Reply:    reply.Reply,
		Data:     reply.Data(),
		Multiple: reply.Multiple,
	})
}

func (h *AIHandler) chatbotError(c *fiber.Ctx, err error) error {
	var (
		validation *service.ValidationError
		upstream   *service.UpstreamError
	)

	switch {
	case errors.As(err, &validation):
		return fail(c, fiber.StatusBadRequest, validation.Message)
	case errors.Is(err, service.ErrNotConfigured):
		return fail(c, fiber.StatusInternalServerError, msgNotConfigured)
	case errors.Is(err, service.ErrNoTransaction):
		return c.JSON(dto.ChatbotResponse{Success: false, Error: msgNoTransaction})
	case errors.As(err, &upstream):
		h.logger.Error("Chatbot oracle call failed",
			zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
			zap.Stringer("kind", upstream.Kind),
			zap.Error(err),
		)
		switch upstream.Kind {
		case service.UpstreamQuota:
			return fail(c, fiber.StatusTooManyRequests, msgQuotaExceeded)
		case service.UpstreamAuth:
			return fail(c, fiber.StatusUnauthorized, msgInvalidKey)
		case service.UpstreamModel:
			return fail(c, fiber.StatusBadRequest, fmt.Sprintf(
				"Requested model %q is not available. Set OPENAI_MODEL to a model your account can access (e.g., gpt-4o-mini) and redeploy.",
				h.llm.ChatModel(),
			))
		}
		if upstream.Message != "" {
			return fail(c, fiber.StatusInternalServerError, upstream.Message)
		}
	}

	h.logger.Error("Chatbot request failed",
		zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
		zap.Error(err),
	)
	return fail(c, fiber.StatusInternalServerError, msgChatFailed)
}

// AnalyzeTransactions godoc
// @Summary Analyze a transaction history
// @Description Builds a financial-health report (analysis, recommendations, predictions, warnings, scores)
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Transactions and user profile"
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/analyze-transactions [post]
func (h *AIHandler) AnalyzeTransactions(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidTxData)
	}

	var history []models.Transaction
	if len(req.Transactions) == 0 || req.Transactions[0] != '[' {
		return fail(c, fiber.StatusBadRequest, msgInvalidTxData)
	}
	if err := json.Unmarshal(req.Transactions, &history); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidTxData)
	}
	if len(history) == 0 {
		return fail(c, fiber.StatusBadRequest, msgNoTransactions)
	}

	result, err := h.analysis.Analyze(c.UserContext(), history, req.UserProfile)
	if err != nil {
		var upstream *service.UpstreamError
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			return fail(c, fiber.StatusInternalServerError, msgNotConfigured)
		case errors.As(err, &upstream) && upstream.Kind == service.UpstreamQuota:
			return fail(c, fiber.StatusTooManyRequests, msgQuotaExceeded)
		case errors.As(err, &upstream) && upstream.Kind == service.UpstreamAuth:
			return fail(c, fiber.StatusUnauthorized, msgInvalidKey)
		}

		h.logger.Error("Analysis request failed",
			zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
			zap.Int("transactions", len(history)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false,
			Error:   msgAnalysisFailed,
			Details: err.Error(),
		})
	}

	return c.JSON(dto.AnalyzeResponse{
		Success:     true,
		Analysis:    result.Report,
		RawResponse: result.RawResponse,
		Timestamp:   h.timestamp(),
	})
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/ai/health [get]
func (h *AIHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:           "healthy",
		Timestamp:        h.timestamp(),
		OpenAIConfigured: h.llm.Configured(),
	})
}

// TestConnection godoc
// @Summary Probe the model provider
// @Description Sends a fixed prompt and returns the model's answer
// @Tags health
// @Produce json
// @Success 200 {object} dto.ProbeResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/test [post]
func (h *AIHandler) TestConnection(c *fiber.Ctx) error {
	if !h.llm.Configured() {
		return fail(c, fiber.StatusInternalServerError, msgNotConfigured)
	}

	message, err := h.llm.Probe(c.UserContext())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.ProbeResponse{
		Success:   true,
		Message:   message,
		Timestamp: h.timestamp(),
	})
}

// FunctionStatus answers GET on the single-endpoint binding.
func (h *AIHandler) FunctionStatus(c *fiber.Ctx) error {
	return c.JSON(dto.FunctionStatusResponse{
		OK:               true,
		Service:          FunctionServiceName,
		Timestamp:        h.timestamp(),
		OpenAIConfigured: h.llm.Configured(),
		Model:            h.llm.ChatModel(),
	})
}

// Preflight answers OPTIONS with an empty 200.
func (h *AIHandler) Preflight(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).Send(nil)
}

func (h *AIHandler) MethodNotAllowed(c *fiber.Ctx) error {
	return fail(c, fiber.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func (h *AIHandler) timestamp() string {
	return h.now().UTC().Format(timestampLayout)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Success: false,
		Error:   message,
	})
}
