package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"synthetic_data_generator/encoder"
	"synthetic_data_generator/logger"
	"synthetic_data_generator/server"
	"synthetic_data_generator/store"
)

func generateCmd(opts *rootOptions) *cobra.Command {
	var format, size, content, subject string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one document or dataset file",
		Example: `  synthgen generate --format "Word Document (.docx)" --size 5 --content whitepaper --subject "edge caching"
  synthgen generate --format "CSV File (.csv)" --size 100 --content 5 --subject finance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close(context.WithoutCancel(ctx))

			res := a.orch.Run(ctx, format, size, content, subject)
			out := cmd.OutOrStdout()
			if asJSON {
				b, _ := json.MarshalIndent(map[string]any{
					"job_id": res.JobID,
					"ok":     res.OK,
					"status": res.Status,
					"path":   res.Path,
					"url":    res.URL,
					"bytes":  res.Bytes,
				}, "", "  ")
				fmt.Fprintln(out, string(b))
			} else {
				fmt.Fprintln(out, res.Status)
				if res.OK {
					fmt.Fprintln(out, res.Path)
					if res.URL != "" {
						fmt.Fprintln(out, res.URL)
					}
				}
			}
			if !res.OK {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(encoder.FormatDOCX), "output format (see: synthgen formats)")
	cmd.Flags().StringVarP(&size, "size", "s", "1", "number of pages (documents) or rows (tables)")
	cmd.Flags().StringVarP(&content, "content", "c", "article", "document type (documents) or number of columns (tables)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject of the generated content (default \"general topics\")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func formatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available formats with their size and content choices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, opt := range newRegistry(cfg).Catalog() {
				fmt.Fprintf(out, "%s [%s]\n", opt.Format, opt.Kind)
				fmt.Fprintf(out, "  %s: %s\n", opt.SizeLabel, strings.Join(opt.SizeOptions, ", "))
				fmt.Fprintf(out, "  %s: %s\n", opt.ContentLabel, strings.Join(opt.ContentOptions, ", "))
			}
			return nil
		},
	}
}

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close(context.WithoutCancel(ctx))

			srv, err := server.New(a.orch, server.Options{
				GenerateTimeout: a.cfg.Server.GenerateTimeout,
				HistoryLimit:    a.cfg.Store.HistoryLimit,
				EnableMetrics:   a.cfg.Metrics.Enabled,
			})
			if err != nil {
				return err
			}
			listen := a.cfg.Server.Addr
			if addr != "" {
				listen = addr
			}
			httpSrv := &http.Server{
				Addr:              listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info(ctx, "starting web server", "addr", listen)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info(ctx, "shutting down web server")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "http listen address (overrides server.addr)")
	return cmd
}

func historyCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation jobs (needs store.driver=sqlite to survive restarts)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			jobs, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
			if err != nil {
				return err
			}
			defer jobs.Close()

			if limit <= 0 {
				limit = cfg.Store.HistoryLimit
			}
			list, err := jobs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "no jobs recorded")
				return nil
			}
			for _, job := range list {
				mark := "✅"
				if !job.OK {
					mark = "❌"
				}
				fmt.Fprintf(out, "%s %s %s %s size=%d %s subject=%q %s\n",
					job.CreatedAt.Format(time.RFC3339), mark, job.ID, job.Format, job.Size, job.Secondary, job.Subject, job.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of jobs to show (default store.history_limit)")
	return cmd
}
