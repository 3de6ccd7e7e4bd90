// Package gemini implements the dictionary.Generator interface using
// Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/cloudrumbles/avvai/internal/config"
	"github.com/cloudrumbles/avvai/internal/dictionary"
	"github.com/cloudrumbles/avvai/internal/redact"
)

// Common errors returned by the gemini package.
var (
	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when Generate is called with no prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrContentBlocked is returned when the model blocks the reply on safety grounds.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry.
	ErrTransientFailure = errors.New("transient error calling language model")
)

// Generator sends prompts to the Gemini API with exponential backoff on
// transient failures.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	maxRetries int
	baseDelay  time.Duration
}

var _ dictionary.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed Generator from LLM configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	delaySeconds := cfg.RetryDelaySeconds
	if delaySeconds < 1 {
		delaySeconds = 2
	}

	return &Generator{
		logger:     logger.With(slog.String("component", "gemini_generator")),
		client:     client,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  time.Duration(delaySeconds) * time.Second,
	}, nil
}

// Generate sends a prompt to the Gemini API and returns the raw reply text.
// Transient API errors are retried with exponential backoff and jitter;
// safety blocks and empty replies fail immediately.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		text, retryable, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", g.maxRetries+1),
			slog.String("error", redact.Error(err)))

		if !retryable {
			return "", err
		}
		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				ErrTransientFailure, g.maxRetries, err)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}
}

func (g *Generator) generateOnce(ctx context.Context, prompt string) (text string, retryable bool, err error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", true, fmt.Errorf("gemini api: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false, errors.New("no content generated")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", false, ErrContentBlocked
	}

	text = resp.Text()
	if text == "" {
		return "", false, errors.New("empty reply")
	}
	return text, false, nil
}
