package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// Provider identifiers accepted in configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewFromProvider creates the completion client for the configured
// provider. Unknown providers are a configuration error, caught at startup.
func NewFromProvider(provider string, cfg *Config, logger *zap.Logger) (CompletionClient, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewClient(cfg, logger)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
