package generator

import (
	"context"
	"time"
)

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider         string
	Model            string
	APIKey           string
	BaseURL          string
	Temperature      float64
	TopP             float64
	RepeatPenalty    float64
	DefaultMaxTokens int
	Timeout          time.Duration
}

func (s *LLMSettings) maxTokens(p Prompt) int {
	if p.MaxTokens > 0 {
		return p.MaxTokens
	}
	return s.DefaultMaxTokens
}
