package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SYNTHGEN"

// Load 加载配置
// 优先级：默认值 -> 配置文件 -> 环境变量（SYNTHGEN_ 前缀，.env 可选）
func Load(path string) (*Config, error) {
	// .env 文件不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		if err := loadConfigFile(v, path, path == DefaultPath); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyProviderKeyFallback(&cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".toml":
		v.SetConfigType("toml")
	default:
		v.SetConfigType("json")
	}

	if err := v.ReadConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

var envPattern = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// expandEnv 替换 ${VAR} / ${VAR:default} 占位符；未定义且无默认值时保留原样
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := envPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if sub[2] != "" {
			return sub[3]
		}
		return match
	})
}

func applyProviderKeyFallback(llm *LLMConfig) {
	if llm.APIKey != "" {
		return
	}
	var names []string
	switch strings.ToLower(llm.Provider) {
	case "openai":
		names = []string{"OPENAI_API_KEY"}
	case "deepseek":
		names = []string{"DEEPSEEK_API_KEY"}
	case "gemini":
		names = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			llm.APIKey = val
			return
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_p", 0.9)
	v.SetDefault("llm.repeat_penalty", 1.1)
	v.SetDefault("llm.default_max_tokens", 4000)
	v.SetDefault("llm.timeout", "10m")

	v.SetDefault("output.dir", "")
	v.SetDefault("output.prefix", "synthetic_")
	v.SetDefault("output.upload_url", "")

	v.SetDefault("pdf.enabled", true)
	v.SetDefault("pdf.page_size", "Letter")
	v.SetDefault("pdf.font_family", "Helvetica")
	v.SetDefault("pdf.validate", true)

	v.SetDefault("limits.max_pages", 50)
	v.SetDefault("limits.max_rows", 2000)
	v.SetDefault("limits.max_columns", 100)

	v.SetDefault("server.addr", ":7860")
	v.SetDefault("server.generate_timeout", "30m")

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", "synthgen.db")
	v.SetDefault("store.history_limit", 50)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 1.0)

	v.SetDefault("metrics.enabled", true)
}
