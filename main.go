package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synthetic_data_generator/config"
	"synthetic_data_generator/encoder"
	"synthetic_data_generator/generator"
	"synthetic_data_generator/logger"
	"synthetic_data_generator/orchestrator"
	"synthetic_data_generator/publisher"
	"synthetic_data_generator/store"
	"synthetic_data_generator/tracer"
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

type rootOptions struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "synthgen",
		Short:         "Generate synthetic documents and tabular datasets with a language model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to config file (json, yaml or toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")

	root.AddCommand(generateCmd(opts), formatsCmd(opts), serveCmd(opts), historyCmd(opts))
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if o.verbose {
		level = "debug"
	}
	// stdout is reserved for command output
	logger.InitWriter(os.Stderr, level, cfg.Logging.Format)
	return cfg, nil
}

// app 一次进程所需的全部组件。
type app struct {
	cfg      *config.Config
	orch     *orchestrator.Orchestrator
	jobs     store.JobStore
	shutdown func(context.Context) error
}

func bootstrap(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	shutdown, err := tracer.Init(ctx, tracer.Config{
		Enabled:    cfg.Tracing.Enabled,
		Endpoint:   cfg.Tracing.Endpoint,
		SampleRate: cfg.Tracing.SampleRate,
	})
	if err != nil {
		return nil, err
	}

	llm, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pub, err := publisher.New(publisher.Config{
		Dir:       cfg.Output.Dir,
		Prefix:    cfg.Output.Prefix,
		UploadURL: cfg.Output.UploadURL,
	}, nil)
	if err != nil {
		return nil, err
	}
	jobs, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	orch, err := orchestrator.New(llm, newRegistry(cfg), pub,
		orchestrator.WithJobStore(jobs),
		orchestrator.WithLimits(orchestrator.Limits{
			MaxPages:   cfg.Limits.MaxPages,
			MaxRows:    cfg.Limits.MaxRows,
			MaxColumns: cfg.Limits.MaxColumns,
		}),
	)
	if err != nil {
		jobs.Close()
		return nil, err
	}
	logger.Debug(ctx, "components ready", "provider", cfg.LLM.Provider, "store", cfg.Store.Driver,
		"output_dir", pub.Dir(), "pdf", cfg.PDF.Enabled)
	return &app{cfg: cfg, orch: orch, jobs: jobs, shutdown: shutdown}, nil
}

func (a *app) Close(ctx context.Context) {
	if err := a.jobs.Close(); err != nil {
		logger.Error(ctx, "failed to close job store", err)
	}
	if err := a.shutdown(ctx); err != nil {
		logger.Error(ctx, "failed to flush traces", err)
	}
}

func newRegistry(cfg *config.Config) *encoder.Registry {
	return encoder.NewRegistry(encoder.Options{
		PDFEnabled: cfg.PDF.Enabled,
		PDF: encoder.PDFOptions{
			PageSize:   cfg.PDF.PageSize,
			FontFamily: cfg.PDF.FontFamily,
			Validate:   cfg.PDF.Validate,
		},
	})
}

func buildLLM(ctx context.Context, cfg *config.Config) (generator.LLMClient, error) {
	if cfg == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	settings := &generator.LLMSettings{
		Provider:         cfg.LLM.Provider,
		Model:            cfg.LLM.Model,
		APIKey:           cfg.LLM.APIKey,
		BaseURL:          cfg.LLM.BaseURL,
		Temperature:      cfg.LLM.Temperature,
		TopP:             cfg.LLM.TopP,
		RepeatPenalty:    cfg.LLM.RepeatPenalty,
		DefaultMaxTokens: cfg.LLM.DefaultMaxTokens,
		Timeout:          cfg.LLM.Timeout,
	}

	var (
		client generator.LLMClient
		err    error
	)
	switch cfg.LLM.Provider {
	case "openai":
		client, err = generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		client, err = generator.NewOpenAILLMFromConfig(settings)
	case "gemini":
		client, err = generator.NewGeminiLLM(ctx, settings)
	case "ollama":
		client = generator.NewOllamaLLM(settings, nil)
	case "mock":
		client = generator.MockLLM{}
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	model := settings.Model
	if model == "" {
		model = "default"
	}
	return generator.Instrument(client, cfg.LLM.Provider, model), nil
}
