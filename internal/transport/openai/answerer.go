package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Answerer generates chat answers through an OpenAI-compatible
// chat-completions API.
type Answerer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// AnswererConfig holds the answer provider settings.
type AnswererConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewAnswerer creates an OpenAI-compatible chat answer provider.
func NewAnswerer(cfg *AnswererConfig) *Answerer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Answerer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

// Complete implements domain.Answerer. Failures are wrapped with
// domain.ErrAnswerProviderError so callers can degrade gracefully.
func (a *Answerer) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", parseAPIError(err, "chat completion", domain.ErrAnswerProviderError)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat completion response: %w", domain.ErrAnswerProviderError)
	}

	if resp.Usage.TotalTokens > 0 {
		a.logger.Debug("Chat completion usage",
			zap.String("model", a.model),
			zap.Int("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int("total_tokens", resp.Usage.TotalTokens),
		)
	}

	return resp.Choices[0].Message.Content, nil
}
