// Package config loads service configuration from config.yaml with
// environment variable overrides. Secrets come from the environment only.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for caretrace-engine.
// Environment variables always override YAML values; API keys must only
// come from environment variables (yaml:"-" fields).
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// EHR data configuration
	Data DataConfig `yaml:"data"`

	// Completion backend configuration
	LLM LLMConfig `yaml:"llm"`
}

// DataConfig locates the CSV tables and tunes summarization.
type DataConfig struct {
	// Dir is the directory holding the six required CSV files.
	Dir string `yaml:"dir" env:"DATA_DIR" env-default:"./data"`
	// NoteHighlights is how many recent notes each summary carries.
	NoteHighlights int `yaml:"note_highlights" env:"DATA_NOTE_HIGHLIGHTS" env-default:"3"`
}

// LLMConfig holds completion backend settings.
type LLMConfig struct {
	// Provider selects the backend: "openai" (default) or "anthropic".
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	// Endpoint overrides the provider's base URL (for proxies and local
	// OpenAI-compatible servers). Empty means the provider default.
	Endpoint string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:""`
	// Model is the default model when a request does not name one.
	Model string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	// Temperature is the sampling temperature for the first attempt; models
	// that reject it are retried once without it.
	Temperature float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.2"`
	// RequestTimeoutSeconds bounds each outbound completion call. On expiry
	// the call is treated as a failure and the fallback template is used.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"LLM_REQUEST_TIMEOUT_SECONDS" env-default:"120"`
	// APIKey authenticates against the configured provider.
	APIKey string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
}

// RequestTimeout returns the configured timeout as a duration.
func (c *LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml is absent the environment alone is used.
// The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.Data.NoteHighlights <= 0 {
		return nil, fmt.Errorf("data.note_highlights must be positive, got %d", cfg.Data.NoteHighlights)
	}
	if cfg.LLM.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("llm.request_timeout_seconds must be positive, got %d", cfg.LLM.RequestTimeoutSeconds)
	}

	return cfg, nil
}
