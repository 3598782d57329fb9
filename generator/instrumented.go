package generator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"synthetic_data_generator/logger"
	"synthetic_data_generator/metrics"
	"synthetic_data_generator/tracer"
)

// InstrumentedLLM wraps a client with a span, call metrics and a debug log line.
type InstrumentedLLM struct {
	next     LLMClient
	provider string
	model    string
}

func Instrument(next LLMClient, provider, model string) *InstrumentedLLM {
	return &InstrumentedLLM{next: next, provider: provider, model: model}
}

func (c *InstrumentedLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.provider", c.provider),
		attribute.String("llm.model", c.model),
		attribute.Int("llm.max_tokens", prompt.MaxTokens),
		attribute.Int("llm.prompt_chars", len(prompt.User)),
	))
	defer span.End()

	start := time.Now()
	out, err := c.next.Complete(ctx, prompt)
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn(ctx, "llm call failed", "provider", c.provider, "model", c.model,
			"duration_ms", elapsed.Milliseconds(), "error", err.Error())
	} else {
		span.SetAttributes(attribute.Int("llm.response_chars", len(out)))
		logger.Debug(ctx, "llm call finished", "provider", c.provider, "model", c.model,
			"duration_ms", elapsed.Milliseconds(), "response_chars", len(out))
	}
	metrics.LLMCallTotal.WithLabelValues(c.provider, c.model, status).Inc()
	metrics.LLMCallDuration.WithLabelValues(c.provider, c.model).Observe(elapsed.Seconds())

	return out, err
}
