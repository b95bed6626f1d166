package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client provides access to OpenAI-compatible completion endpoints.
type Client struct {
	client   *openai.Client
	endpoint string
	logger   *zap.Logger
}

// Config holds configuration for creating completion clients.
type Config struct {
	Endpoint string // Base URL, e.g., "https://api.openai.com/v1"
	APIKey   string // Optional for local endpoints
}

// NewClient creates a new OpenAI-compatible completion client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}

	return &Client{
		client:   openai.NewClientWithConfig(clientConfig),
		endpoint: clientConfig.BaseURL,
		logger:   logger.Named("llm"),
	}, nil
}

// Provider implements CompletionClient.
func (c *Client) Provider() string { return "openai" }

// Complete sends the prompt as a chat completion. The first attempt carries
// the sampling temperature; if the model rejects that parameter the request
// is retried exactly once without it. Any other failure is classified and
// returned.
func (c *Client) Complete(ctx context.Context, prompt, model string, temperature float64) (string, error) {
	c.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()

	text, err := c.complete(ctx, prompt, model, float32(temperature))
	if err != nil && IsTemperatureUnsupported(err) {
		c.logger.Warn("model rejected temperature, retrying without it",
			zap.String("model", model))
		// Zero temperature is omitted from the request payload.
		text, err = c.complete(ctx, prompt, model, 0)
	}
	if err != nil {
		c.logger.Error("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	c.logger.Info("completion request completed",
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

func (c *Client) complete(ctx context.Context, prompt, model string, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
