package service

import (
	"errors"
	"testing"

	"github.com/Role1776/gigago"
)

func TestApplyGigaChatParams(t *testing.T) {
	model := &gigago.GenerativeModel{MaxTokens: 999999999}
	applyGigaChatParams(model, "system", InvokeParams{Model: "GigaChat", Temperature: 0.3, MaxTokens: 500})

	if model.SystemInstruction != "system" || model.Temperature != 0.3 || model.MaxTokens != 500 {
		t.Errorf("model = %+v, want system prompt, 0.3 and 500 tokens", model)
	}

	applyGigaChatParams(model, "", InvokeParams{Temperature: 0.7, MaxTokens: probeMaxTokens})
	if model.MaxTokens != probeMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", model.MaxTokens, probeMaxTokens)
	}
}

func TestGigaChatUpstreamError(t *testing.T) {
	tests := []struct {
		msg  string
		want UpstreamKind
	}{
		{"unexpected status code 429: too many requests", UpstreamQuota},
		{"unexpected status code 401", UpstreamAuth},
		{"unexpected status code 404", UpstreamModel},
		{"connection refused", UpstreamUnknown},
	}
	for _, tt := range tests {
		if got := gigaChatUpstreamError(errors.New(tt.msg)).Kind; got != tt.want {
			t.Errorf("gigaChatUpstreamError(%q).Kind = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
