package service

import (
	"context"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/resumeready/backend/internal/config"
	"github.com/tidwall/gjson"
)

type OpenAIServiceInterface interface {
	ChatCompletion(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type OpenAIService struct {
	APIKey string
	client *resty.Client
}

func NewOpenAIService() *OpenAIService {
	cfg := config.LoadOpenAIConfig()
	return &OpenAIService{
		APIKey: cfg.APIKey,
		client: resty.New().SetBaseURL(cfg.BaseURL),
	}
}

// ChatCompletion sends a single user prompt and returns the raw completion
// text. The caller owns parsing; the model output is untrusted.
func (s *OpenAIService) ChatCompletion(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": "gpt-4o-mini",
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"max_tokens":  maxTokens,
			"temperature": 0.7,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		log.Printf("LLM error response: %s", resp.String())
		return "", fmt.Errorf("chat completion failed with status %d", resp.StatusCode())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
