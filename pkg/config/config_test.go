package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeConfigYAML marshals the given document into config.yaml in a temp
// working directory and chdirs into it for the duration of the test.
func writeConfigYAML(t *testing.T, doc map[string]any) {
	t.Helper()
	dir := t.TempDir()
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644))
	t.Chdir(dir)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config.yaml

	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, 3, cfg.Data.NoteHighlights)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 120*time.Second, cfg.LLM.RequestTimeout())
}

func TestLoad_FromYAML(t *testing.T) {
	writeConfigYAML(t, map[string]any{
		"port": "9090",
		"data": map[string]any{
			"dir":             "/srv/ehr",
			"note_highlights": 5,
		},
		"llm": map[string]any{
			"provider":                "anthropic",
			"model":                   "claude-sonnet-4-20250514",
			"temperature":             0.5,
			"request_timeout_seconds": 30,
		},
	})

	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/srv/ehr", cfg.Data.Dir)
	assert.Equal(t, 5, cfg.Data.NoteHighlights)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.InDelta(t, 0.5, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 30*time.Second, cfg.LLM.RequestTimeout())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	writeConfigYAML(t, map[string]any{
		"port": "9090",
		"llm":  map[string]any{"model": "gpt-4o"},
	})
	t.Setenv("PORT", "7070")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")

	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad_APIKeyComesFromEnvOnly(t *testing.T) {
	// An api_key key in YAML must be ignored; the yaml:"-" tag keeps
	// secrets out of checked-in config.
	writeConfigYAML(t, map[string]any{
		"llm": map[string]any{"api_key": "leaked-from-yaml"},
	})
	t.Setenv("LLM_API_KEY", "sk-from-env")

	cfg, err := Load("test-version")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
}

func TestLoad_RejectsNonPositiveValues(t *testing.T) {
	t.Run("note highlights", func(t *testing.T) {
		writeConfigYAML(t, map[string]any{
			"data": map[string]any{"note_highlights": -1},
		})
		_, err := Load("test-version")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "note_highlights")
	})

	t.Run("request timeout", func(t *testing.T) {
		writeConfigYAML(t, map[string]any{
			"llm": map[string]any{"request_timeout_seconds": -1},
		})
		_, err := Load("test-version")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request_timeout_seconds")
	})
}
