package service

import (
	"context"
	"errors"

	"wealthease-ai/pkg/config"

	"github.com/sashabaranov/go-openai"
)

type openAIProvider struct {
	client *openai.Client
}

// newOpenAIProvider also serves OpenAI-compatible endpoints through OPENAI_BASE_URL.
func newOpenAIProvider(cfg *config.LLMConfig) *openAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openAIProvider{client: openai.NewClientWithConfig(clientConfig)}
}

func (p *openAIProvider) Invoke(ctx context.Context, systemPrompt, userText string, params InvokeParams) (string, error) {
	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userText})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    messages,
		Temperature: float32(params.Temperature),
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return "", openAIUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Kind: UpstreamUnknown, Message: "no choices in oracle response"}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *openAIProvider) Close() error {
	return nil
}

func openAIUpstreamError(err error) *UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code, _ := apiErr.Code.(string)
		return &UpstreamError{
			Kind:    classifyStatus(apiErr.HTTPStatusCode, code),
			Status:  apiErr.HTTPStatusCode,
			Message: apiErr.Message,
			Err:     err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{
			Kind:    classifyStatus(reqErr.HTTPStatusCode, ""),
			Status:  reqErr.HTTPStatusCode,
			Message: reqErr.Error(),
			Err:     err,
		}
	}

	return &UpstreamError{Kind: UpstreamUnknown, Message: err.Error(), Err: err}
}
