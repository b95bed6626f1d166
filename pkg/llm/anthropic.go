package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// anthropicMaxTokens bounds generated summary length; clinical summaries
// are short relative to this.
const anthropicMaxTokens = 4096

// AnthropicClient provides access to the Anthropic Messages API behind the
// same CompletionClient contract as the OpenAI-compatible client.
type AnthropicClient struct {
	client *anthropic.Client
	logger *zap.Logger
}

// NewAnthropicClient creates a new Anthropic completion client.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	var opts []anthropic.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(cfg.Endpoint, "/")))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		logger: logger.Named("llm"),
	}, nil
}

// Provider implements CompletionClient.
func (c *AnthropicClient) Provider() string { return "anthropic" }

// Complete sends the prompt to the Messages API, with the same single
// temperature-compat retry as the OpenAI-compatible client.
func (c *AnthropicClient) Complete(ctx context.Context, prompt, model string, temperature float64) (string, error) {
	c.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()

	temp := float32(temperature)
	text, err := c.complete(ctx, prompt, model, &temp)
	if err != nil && IsTemperatureUnsupported(err) {
		c.logger.Warn("model rejected temperature, retrying without it",
			zap.String("model", model))
		text, err = c.complete(ctx, prompt, model, nil)
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

func (c *AnthropicClient) complete(ctx context.Context, prompt, model string, temperature *float32) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		System:      systemMessage,
		MaxTokens:   anthropicMaxTokens,
		Temperature: temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.GetFirstContentText()), nil
}
