package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "mistral"
)

// OllamaLLM talks to a local Ollama server through /api/generate.
type OllamaLLM struct {
	client   *http.Client
	endpoint string
	model    string
	settings LLMSettings
}

type ollamaOptions struct {
	NumPredict    int     `json:"num_predict,omitempty"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	RepeatPenalty float64 `json:"repeat_penalty"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func NewOllamaLLM(cfg *LLMSettings, client *http.Client) *OllamaLLM {
	if cfg == nil {
		cfg = &LLMSettings{}
	}
	url := strings.TrimSpace(cfg.BaseURL)
	if url == "" {
		url = defaultOllamaURL
	}
	url = strings.TrimRight(url, "/")
	if !strings.HasSuffix(url, "/api/generate") {
		url += "/api/generate"
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &OllamaLLM{client: client, endpoint: url, model: model, settings: *cfg}
}

func (o *OllamaLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt.User,
		System: prompt.System,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:    o.settings.maxTokens(prompt),
			Temperature:   o.settings.Temperature,
			TopP:          o.settings.TopP,
			RepeatPenalty: o.settings.RepeatPenalty,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama generate request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama: %s", parsed.Error)
	}
	return parsed.Response, nil
}
