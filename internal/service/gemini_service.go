package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/resumeready/backend/internal/config"
	"google.golang.org/genai"
)

type GeminiServiceInterface interface {
	ExtractImageText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// GeminiService handles vision extraction: reading job-description text out
// of an uploaded screenshot or photo.
type GeminiService struct {
	Client            *genai.Client
	Model             string
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	consecutiveErrors int
	circuitBreakerMax int
}

const imageExtractionPrompt = `Extract all readable text from the following image of a job posting. ` +
	`Return only the extracted text, preserving the reading order. Do not add commentary.`

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             geminiConfig.Model,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

// ExtractImageText runs the vision model over the uploaded image bytes and
// returns the text it read. Transport-level failures are retried with
// backoff; the caller sees a single success or failure.
func (s *GeminiService) ExtractImageText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}
	if mimeType == "" {
		return "", fmt.Errorf("image mime type cannot be empty")
	}

	if s.consecutiveErrors >= s.circuitBreakerMax {
		return "", fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	parts := []*genai.Part{
		genai.NewPartFromText(imageExtractionPrompt),
		genai.NewPartFromBytes(data, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for ExtractImageText after %v",
				attempt, s.MaxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		genConfig := &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		}

		result, err := s.Client.Models.GenerateContent(
			timeoutCtx,
			s.Model,
			contents,
			genConfig,
		)

		if err == nil {
			s.consecutiveErrors = 0
			if err := s.validateGenerateResponse(result); err != nil {
				return "", fmt.Errorf("invalid response: %w", err)
			}
			text := strings.TrimSpace(result.Text())
			if text == "" {
				return "", fmt.Errorf("no text extracted from image")
			}
			return text, nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			log.Printf("Non-retryable error: %v", err)
			s.consecutiveErrors++
			return "", fmt.Errorf("extract image text failed: %w", err)
		}

		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	s.consecutiveErrors++
	return "", fmt.Errorf("max retries (%d) exceeded for ExtractImageText: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504: // Server errors
			return true
		case 400, 401, 403, 404: // Client errors
			return false
		}
	}

	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
