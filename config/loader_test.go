package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.LLM.TopP, 1e-9)
	assert.InDelta(t, 1.1, cfg.LLM.RepeatPenalty, 1e-9)
	assert.Equal(t, 4000, cfg.LLM.DefaultMaxTokens)
	assert.Equal(t, 10*time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, "synthetic_", cfg.Output.Prefix)
	assert.True(t, cfg.PDF.Enabled)
	assert.Equal(t, 50, cfg.Limits.MaxPages)
	assert.Equal(t, 2000, cfg.Limits.MaxRows)
	assert.Equal(t, 100, cfg.Limits.MaxColumns)
	assert.Equal(t, ":7860", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestLoadJSONFileWithEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_SYNTH_KEY", "sk-from-env")
	path := writeFile(t, "config.json", `{
  "llm": {"provider": "openai", "model": "gpt-4o-mini", "api_key": "${TEST_SYNTH_KEY}", "base_url": "${TEST_SYNTH_BASE:https://api.example.com/v1}"},
  "pdf": {"enabled": false},
  "server": {"addr": ":9000", "generate_timeout": "90s"}
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.Equal(t, "https://api.example.com/v1", cfg.LLM.BaseURL)
	assert.False(t, cfg.PDF.Enabled)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 90*time.Second, cfg.Server.GenerateTimeout)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", "llm:\n  provider: mock\nlimits:\n  max_rows: 10\n")
	t.Setenv("SYNTHGEN_LIMITS_MAX_ROWS", "25")
	t.Setenv("SYNTHGEN_STORE_DRIVER", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 25, cfg.Limits.MaxRows)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestLoadProviderKeyFallback(t *testing.T) {
	path := writeFile(t, "config.json", `{"llm": {"provider": "gemini", "model": "gemini-2.5-flash"}}`)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := writeFile(t, "config.json", `{"llm": {"provider": "claude-ish"}}`)
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")

	badStore := writeFile(t, "store.json", `{"store": {"driver": "redis"}}`)
	_, err = Load(badStore)
	require.Error(t, err)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SYNTH_A", "alpha")
	assert.Equal(t, "alpha-beta-${SYNTH_UNSET_X}",
		expandEnv("${SYNTH_A}-${SYNTH_UNSET_Y:beta}-${SYNTH_UNSET_X}"))
}
