package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ModelClient = (*AnthropicAdapter)(nil)

// AnthropicAdapter implements adapter.ModelClient against the Messages API.
// One outbound call per Generate; retries belong to the caller.
type AnthropicAdapter struct {
	apiKey string
	base   string // https://api.anthropic.com/v1
	model  string
	client *http.Client
}

func NewAnthropicAdapter(apiKey, model string) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key empty")
	}
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	return &AnthropicAdapter{
		apiKey: apiKey,
		base:   "https://api.anthropic.com/v1",
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *AnthropicAdapter) Name() string { return "anthropic" }

func (a *AnthropicAdapter) Generate(ctx context.Context, prompt string, params adapter.GenerateParams) (string, error) {
	model := params.Model
	if model == "" {
		model = a.model
	}

	reqBody := struct {
		Model     string  `json:"model"`
		MaxTokens int     `json:"max_tokens"`
		Temp      float64 `json:"temperature"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}{
		Model:     model,
		MaxTokens: params.MaxTokens,
		Temp:      params.Temperature,
		Messages: []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{{Role: "user", Content: prompt}},
	}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/messages", bytes.NewReader(b))
	if err != nil {
		return "", &domain.ProviderError{Provider: a.Name(), Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: a.Name(), Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", &domain.ProviderError{Provider: a.Name(), Cause: fmt.Errorf("http %d", resp.StatusCode)}
	}

	var payload struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &domain.ProviderError{Provider: a.Name(), Cause: err}
	}
	for _, c := range payload.Content {
		if c.Type == "text" && c.Text != "" {
			return c.Text, nil
		}
	}
	return "", &domain.ProviderError{Provider: a.Name(), Cause: errors.New("no text content in response")}
}
