// Package orchestrator runs one generation request end to end: validation,
// content generation, encoding, publishing and history.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"synthetic_data_generator/apperrors"
	"synthetic_data_generator/encoder"
	"synthetic_data_generator/generator"
	"synthetic_data_generator/logger"
	"synthetic_data_generator/metrics"
	"synthetic_data_generator/publisher"
	"synthetic_data_generator/store"
	"synthetic_data_generator/tracer"
)

const summaryRunes = 200

// Sink receives encoded artifacts.
type Sink interface {
	Publish(ctx context.Context, art publisher.Artifact) (publisher.Receipt, error)
}

// Result is what callers get back. Path is empty whenever OK is false.
type Result struct {
	JobID    string
	Path     string
	URL      string
	Status   string
	OK       bool
	Summary  string
	Format   encoder.Format
	Bytes    int
	Duration time.Duration
	Err      error
}

// Orchestrator 组合模型客户端、编码器、发布与历史记录。
type Orchestrator struct {
	llm      generator.LLMClient
	registry *encoder.Registry
	sink     Sink
	jobs     store.JobStore
	limits   Limits
	newRand  func() *rand.Rand
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithJobStore records every result. Without it no history is kept.
func WithJobStore(s store.JobStore) Option { return func(o *Orchestrator) { o.jobs = s } }

func WithLimits(l Limits) Option { return func(o *Orchestrator) { o.limits = l } }

// WithRandSource replaces the per-request random source factory.
func WithRandSource(fn func() *rand.Rand) Option { return func(o *Orchestrator) { o.newRand = fn } }

func New(llm generator.LLMClient, registry *encoder.Registry, sink Sink, opts ...Option) (*Orchestrator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if registry == nil {
		return nil, errors.New("encoder registry is required")
	}
	if sink == nil {
		return nil, errors.New("publisher is required")
	}
	o := &Orchestrator{
		llm:      llm,
		registry: registry,
		sink:     sink,
		limits:   DefaultLimits,
		newRand:  newRand,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Registry exposes the encoders this orchestrator dispatches to.
func (o *Orchestrator) Registry() *encoder.Registry { return o.registry }

// Jobs returns the job store, or nil when history is disabled.
func (o *Orchestrator) Jobs() store.JobStore { return o.jobs }

// Run parses string inputs and generates. Parse failures come back as a failed Result.
func (o *Orchestrator) Run(ctx context.Context, format, size, content, subject string) Result {
	req, err := ParseRequest(format, size, content, subject)
	if err != nil {
		res := failure(uuid.NewString(), err)
		res.Format = encoder.Format(format)
		logger.Warn(ctx, "rejected generation request", "format", format, "error", err.Error())
		metrics.GenerationTotal.WithLabelValues("unknown", "invalid", "rejected").Inc()
		return res
	}
	return o.Generate(ctx, req)
}

// Generate never returns an error: every failure, panics included, ends up
// as a Result with OK=false and a status starting with "❌ Error: ".
func (o *Orchestrator) Generate(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	jobID := uuid.NewString()
	req.Subject = normalizeSubject(req.Subject)

	ctx = logger.WithContext(ctx, logger.JobIDKey, jobID)
	ctx, span := tracer.Start(ctx, "orchestrator.generate", trace.WithAttributes(
		attribute.String("job.id", jobID),
		attribute.String("job.format", string(req.Format)),
		attribute.Int("job.size", req.Size),
	))
	defer span.End()
	if traceID := tracer.TraceID(ctx); traceID != "" {
		ctx = logger.WithContext(ctx, logger.TraceIDKey, traceID)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "generation panicked", nil, "panic", fmt.Sprint(r))
			res = failure(jobID, apperrors.Newf(apperrors.CodeInternal, "unexpected failure: %v", r))
			res.Format = req.Format
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		o.record(ctx, req, res, start)
	}()

	logger.Info(ctx, "generation started", "format", req.Format, "size", req.Size,
		"content", req.Secondary(), "subject", req.Subject)

	if err := o.validate(req); err != nil {
		res = failure(jobID, err)
		res.Format = req.Format
		return res
	}

	var (
		out output
		err error
	)
	if req.Format.Kind() == encoder.KindDocument {
		out, err = o.generateDocument(ctx, req)
	} else {
		out, err = o.generateTable(ctx, req)
	}
	if err != nil {
		res = failure(jobID, err)
		res.Format = req.Format
		return res
	}

	receipt, err := o.sink.Publish(ctx, publisher.Artifact{Data: out.data, Suffix: req.Format.Suffix()})
	if err != nil {
		res = failure(jobID, err)
		res.Format = req.Format
		return res
	}

	return Result{
		JobID:   jobID,
		Path:    receipt.Path,
		URL:     receipt.URL,
		Status:  out.status,
		OK:      true,
		Summary: out.summary,
		Format:  req.Format,
		Bytes:   len(out.data),
	}
}

type output struct {
	data    []byte
	status  string
	summary string
}

// validate 顺序：格式 → 能力 → 尺寸 → 体裁/列数。
func (o *Orchestrator) validate(req Request) error {
	if _, err := encoder.ParseFormat(string(req.Format)); err != nil {
		return err
	}
	if !o.registry.Available(req.Format) {
		if req.Format.Kind() == encoder.KindDocument {
			_, err := o.registry.Document(req.Format)
			return err
		}
		_, err := o.registry.Table(req.Format)
		return err
	}
	if req.Format.Kind() == encoder.KindDocument {
		if err := checkRange("Number of pages", req.Size, o.limits.MaxPages); err != nil {
			return err
		}
		if _, err := generator.ParseDocumentType(string(req.DocumentType)); err != nil {
			return err
		}
		return nil
	}
	if err := checkRange("Number of rows", req.Size, o.limits.MaxRows); err != nil {
		return err
	}
	return checkRange("Number of columns", req.Columns, o.limits.MaxColumns)
}

func (o *Orchestrator) generateDocument(ctx context.Context, req Request) (output, error) {
	enc, err := o.registry.Document(req.Format)
	if err != nil {
		return output{}, err
	}
	assembler, err := generator.NewAssembler(o.llm)
	if err != nil {
		return output{}, apperrors.Wrap(err, apperrors.CodeInternal, "Failed to prepare document generation")
	}
	body, err := assembler.Assemble(ctx, req.DocumentType, req.Size, req.Subject)
	if err != nil {
		if apperrors.IsAppError(err) {
			return output{}, err
		}
		return output{}, apperrors.Wrap(err, apperrors.CodeUpstreamGeneration, "Document generation was interrupted")
	}

	text := body.Text()
	words := generator.WordCount(text)
	summary := generator.Summarize(text, summaryRunes)
	metrics.DocumentWordCount.WithLabelValues(string(req.DocumentType)).Observe(float64(words))
	logger.Info(ctx, "document ready", "blocks", len(body.Blocks), "words", words,
		"title", generator.ExtractTitle(text))

	data, err := enc.EncodeDocument(body)
	if err != nil {
		return output{}, apperrors.Wrap(err, apperrors.CodeEncodingFailed, "Failed to encode document")
	}
	return output{
		data:    data,
		status:  fmt.Sprintf("✅ Generated %d-page %s about '%s' successfully!", req.Size, req.DocumentType, req.Subject),
		summary: summary,
	}, nil
}

func (o *Orchestrator) generateTable(ctx context.Context, req Request) (output, error) {
	enc, err := o.registry.Table(req.Format)
	if err != nil {
		return output{}, err
	}
	synth, err := generator.NewTableSynthesizer(o.llm, o.newRand())
	if err != nil {
		return output{}, apperrors.Wrap(err, apperrors.CodeInternal, "Failed to prepare table generation")
	}
	spec, stats := synth.Synthesize(ctx, req.Size, req.Columns, req.Subject)
	metrics.TableRowsTotal.WithLabelValues("model").Add(float64(stats.Parsed))
	metrics.TableRowsTotal.WithLabelValues("synthetic").Add(float64(stats.Synthesized))

	data, err := enc.EncodeTable(spec)
	if err != nil {
		return output{}, apperrors.Wrap(err, apperrors.CodeEncodingFailed, "Failed to encode table")
	}
	return output{
		data:    data,
		status:  fmt.Sprintf("✅ Generated %d rows × %d columns about '%s' successfully!", req.Size, req.Columns, req.Subject),
		summary: strings.Join(spec.Headers, ", "),
	}, nil
}

func failure(jobID string, err error) Result {
	return Result{
		JobID:  jobID,
		Status: "❌ Error: " + apperrors.UserMessage(err),
		Err:    err,
	}
}

// record 写指标与历史；历史写入失败只记日志，不影响结果。
func (o *Orchestrator) record(ctx context.Context, req Request, res Result, start time.Time) {
	kind := string(req.Format.Kind())
	if kind == "" {
		kind = "unknown"
	}
	status := "success"
	if !res.OK {
		status = "error"
		logger.Warn(ctx, "generation failed", "duration_ms", res.Duration.Milliseconds(), "status", res.Status)
	} else {
		logger.Info(ctx, "generation finished", "path", res.Path, "bytes", res.Bytes,
			"duration_ms", res.Duration.Milliseconds())
	}
	metrics.GenerationTotal.WithLabelValues(kind, string(req.Format), status).Inc()
	metrics.GenerationDuration.WithLabelValues(kind).Observe(res.Duration.Seconds())

	if o.jobs == nil {
		return
	}
	job := store.Job{
		ID:        res.JobID,
		Format:    string(req.Format),
		Kind:      kind,
		Subject:   req.Subject,
		Size:      req.Size,
		Secondary: req.Secondary(),
		Path:      res.Path,
		URL:       res.URL,
		Status:    res.Status,
		OK:        res.OK,
		Summary:   res.Summary,
		Bytes:     res.Bytes,
		CreatedAt: start,
		Duration:  res.Duration,
	}
	if err := o.jobs.Save(context.WithoutCancel(ctx), job); err != nil {
		logger.Error(ctx, "failed to save job", err)
	}
}
