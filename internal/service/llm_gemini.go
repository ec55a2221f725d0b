package service

import (
	"context"
	"errors"

	"wealthease-ai/pkg/config"

	"google.golang.org/genai"
)

type geminiProvider struct {
	client *genai.Client
}

func newGeminiProvider(ctx context.Context, cfg *config.LLMConfig) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) Invoke(ctx context.Context, systemPrompt, userText string, params InvokeParams) (string, error) {
	generateConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		MaxOutputTokens: int32(params.MaxTokens),
	}
	if systemPrompt != "" {
		generateConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, params.Model, genai.Text(userText), generateConfig)
	if err != nil {
		return "", geminiUpstreamError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", &UpstreamError{Kind: UpstreamUnknown, Message: "empty response from Gemini"}
	}
	return text, nil
}

func (p *geminiProvider) Close() error {
	return nil
}

func geminiUpstreamError(err error) *UpstreamError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Kind:    classifyStatus(apiErr.Code, apiErr.Status),
			Status:  apiErr.Code,
			Message: apiErr.Message,
			Err:     err,
		}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &UpstreamError{
			Kind:    classifyStatus(apiErrPtr.Code, apiErrPtr.Status),
			Status:  apiErrPtr.Code,
			Message: apiErrPtr.Message,
			Err:     err,
		}
	}

	return &UpstreamError{Kind: UpstreamUnknown, Message: err.Error(), Err: err}
}
