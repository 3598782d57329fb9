package generator

import (
	"context"
	"sync"
)

// recordingLLM answers every prompt through respond and keeps the prompts it saw.
type recordingLLM struct {
	mu      sync.Mutex
	prompts []Prompt
	respond func(p Prompt, call int) (string, error)
}

func (r *recordingLLM) Complete(_ context.Context, p Prompt) (string, error) {
	r.mu.Lock()
	r.prompts = append(r.prompts, p)
	call := len(r.prompts)
	r.mu.Unlock()
	return r.respond(p, call)
}

func fixedLLM(text string) *recordingLLM {
	return &recordingLLM{respond: func(Prompt, int) (string, error) { return text, nil }}
}

func failingLLM(err error) *recordingLLM {
	return &recordingLLM{respond: func(Prompt, int) (string, error) { return "", err }}
}
