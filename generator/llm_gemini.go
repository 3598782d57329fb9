package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiLLM implements LLMClient on the Gemini API.
type GeminiLLM struct {
	client   *genai.Client
	model    string
	settings LLMSettings
}

func NewGeminiLLM(ctx context.Context, cfg *LLMSettings) (*GeminiLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; provide llm.api_key or GEMINI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiLLM{client: client, model: model, settings: *cfg}, nil
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	conf := &genai.GenerateContentConfig{}
	if n := g.settings.maxTokens(prompt); n > 0 {
		conf.MaxOutputTokens = int32(n)
	}
	if g.settings.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(g.settings.Temperature))
	}
	if g.settings.TopP > 0 {
		conf.TopP = genai.Ptr(float32(g.settings.TopP))
	}
	if prompt.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.User), conf)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
