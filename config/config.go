// Package config holds runtime settings for the generator CLI and HTTP server.
package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPath is where the CLI looks for a config file when --config is not given.
const DefaultPath = "config/config.json"

type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Output  OutputConfig  `mapstructure:"output"`
	PDF     PDFConfig     `mapstructure:"pdf"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LLMConfig 模型提供方配置。
type LLMConfig struct {
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	Temperature      float64       `mapstructure:"temperature"`
	TopP             float64       `mapstructure:"top_p"`
	RepeatPenalty    float64       `mapstructure:"repeat_penalty"`
	DefaultMaxTokens int           `mapstructure:"default_max_tokens"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type OutputConfig struct {
	Dir       string `mapstructure:"dir"`
	Prefix    string `mapstructure:"prefix"`
	UploadURL string `mapstructure:"upload_url"`
}

type PDFConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	PageSize   string `mapstructure:"page_size"`
	FontFamily string `mapstructure:"font_family"`
	Validate   bool   `mapstructure:"validate"`
}

type LimitsConfig struct {
	MaxPages   int `mapstructure:"max_pages"`
	MaxRows    int `mapstructure:"max_rows"`
	MaxColumns int `mapstructure:"max_columns"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
}

type StoreConfig struct {
	Driver       string `mapstructure:"driver"`
	Path         string `mapstructure:"path"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Endpoint   string  `mapstructure:"endpoint"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var knownProviders = []string{"openai", "deepseek", "gemini", "ollama", "mock"}

// Validate checks the settings that cannot be fixed by a default.
func (c *Config) Validate() error {
	provider := strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if provider == "" {
		return fmt.Errorf("llm.provider is required (one of %s)", strings.Join(knownProviders, ", "))
	}
	found := false
	for _, p := range knownProviders {
		if p == provider {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	c.LLM.Provider = provider

	if c.Limits.MaxPages <= 0 || c.Limits.MaxRows <= 0 || c.Limits.MaxColumns <= 0 {
		return fmt.Errorf("limits must be positive: pages=%d rows=%d columns=%d",
			c.Limits.MaxPages, c.Limits.MaxRows, c.Limits.MaxColumns)
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("store driver %q not supported (memory or sqlite)", c.Store.Driver)
	}
	return nil
}
