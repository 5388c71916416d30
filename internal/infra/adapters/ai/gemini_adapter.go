package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ModelClient = (*GeminiAdapter)(nil)

// GeminiAdapter implements adapter.ModelClient using the official SDK.
type GeminiAdapter struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, defaultModel string) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if defaultModel == "" {
		defaultModel = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, defaultModel: defaultModel}, nil
}

func (g *GeminiAdapter) Name() string { return "gemini" }

func (g *GeminiAdapter) Generate(ctx context.Context, prompt string, params adapter.GenerateParams) (string, error) {
	model := params.Model
	if model == "" {
		model = g.defaultModel
	}

	temp := float32(params.Temperature)
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(params.MaxTokens),
		Temperature:     &temp,
	}

	resp, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}}, cfg)
	if err != nil {
		return "", &domain.ProviderError{Provider: g.Name(), Cause: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &domain.ProviderError{Provider: g.Name(), Cause: errors.New("empty response")}
	}
	return text, nil
}
