package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"wealthease-ai/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

var gigaChatStatusPattern = regexp.MustCompile(`\b(401|403|404|429|5\d\d)\b`)

// gigaChatProvider creates its client on first use: gigago exchanges the
// key for an OAuth token when the client is built, and a failed exchange
// must surface per request rather than abort startup.
type gigaChatProvider struct {
	cfg    *config.LLMConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *gigago.Client
}

func newGigaChatProvider(cfg *config.LLMConfig, logger *zap.Logger) *gigaChatProvider {
	return &gigaChatProvider{cfg: cfg, logger: logger}
}

func (p *gigaChatProvider) getClient(ctx context.Context) (*gigago.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(p.cfg.GigaChatScope),
	}
	if p.cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		p.logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, p.cfg.APIKey, opts...)
	if err != nil {
		return nil, gigaChatUpstreamError(fmt.Errorf("failed to create GigaChat client: %w", err))
	}
	p.client = client
	return client, nil
}

func (p *gigaChatProvider) Invoke(ctx context.Context, systemPrompt, userText string, params InvokeParams) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(params.Model)
	applyGigaChatParams(model, systemPrompt, params)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: userText},
	}

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return "", gigaChatUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Kind: UpstreamUnknown, Message: "no response from GigaChat"}
	}

	return resp.Choices[0].Message.Content, nil
}

func applyGigaChatParams(model *gigago.GenerativeModel, systemPrompt string, params InvokeParams) {
	model.SystemInstruction = systemPrompt
	model.Temperature = params.Temperature
	if params.MaxTokens > 0 {
		model.MaxTokens = int32(params.MaxTokens)
	}
}

func (p *gigaChatProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
	}
	return nil
}

// gigago reports HTTP failures as formatted errors, so the status is read
// back out of the message.
func gigaChatUpstreamError(err error) *UpstreamError {
	status := 0
	if m := gigaChatStatusPattern.FindString(err.Error()); m != "" {
		status, _ = strconv.Atoi(m)
	}
	return &UpstreamError{
		Kind:    classifyStatus(status, ""),
		Status:  status,
		Message: err.Error(),
		Err:     err,
	}
}
