package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/cli/config"
	controller "github.com/m-mizutani/courier/pkg/controller/http"
	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/usecase"
	"github.com/m-mizutani/courier/pkg/utils/async"
)

// services bundles the use cases shared by serve and check
type services struct {
	webhook     interfaces.WebhookUseCase
	diagnostics interfaces.DiagnosticsUseCase
	pipeline    *config.PipelineFile
}

type serviceConfig struct {
	server   config.Server
	github   config.GitHub
	llm      config.LLM
	clickup  config.ClickUp
	slack    config.Slack
	sentry   config.Sentry
	pipeline config.Pipeline
}

func (c *serviceConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, c.server.Flags()...)
	flags = append(flags, c.github.Flags()...)
	flags = append(flags, c.llm.Flags()...)
	flags = append(flags, c.clickup.Flags()...)
	flags = append(flags, c.slack.Flags()...)
	flags = append(flags, c.sentry.Flags()...)
	flags = append(flags, c.pipeline.Flags()...)
	return flags
}

func (c *serviceConfig) build(ctx context.Context) (*services, error) {
	pipeline, err := c.pipeline.Load()
	if err != nil {
		return nil, err
	}
	timeout := c.server.HTTPTimeout
	summaryOpts := pipeline.SummaryOptions()
	c.warnMissingCredentials(ctx)

	githubClient, err := c.github.NewClient(timeout)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}
	llmClient, err := c.llm.NewClient(ctx, summaryOpts, timeout)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM client")
	}
	tracker := c.clickup.NewClient(timeout)

	summarizer, err := usecase.NewSummarizer(llmClient, summaryOpts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create summarizer")
	}
	extractor, err := usecase.NewTaskIDExtractor(pipeline.Patterns())
	if err != nil {
		return nil, goerr.Wrap(err, "invalid task ID patterns")
	}

	var opts []usecase.WebhookOption
	if notifier := c.slack.NewNotifier(); notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}

	return &services{
		webhook:     usecase.NewWebhook(githubClient, summarizer, extractor, tracker, opts...),
		diagnostics: usecase.NewDiagnostics(githubClient, llmClient, c.llm.ModelName(summaryOpts.Model), tracker),
		pipeline:    pipeline,
	}, nil
}

// warnMissingCredentials logs tokens that are not set. The process still starts
// and the affected upstream calls fail through the usual skip paths.
func (c *serviceConfig) warnMissingCredentials(ctx context.Context) {
	logger := ctxlog.From(ctx)
	if c.github.Token == "" {
		logger.Warn("github-token is not set, commit details cannot be fetched")
	}
	if c.clickup.Token == "" {
		logger.Warn("clickup-token is not set, tasks cannot be found or commented")
	}
}

func cmdServe() *cli.Command {
	var cfg serviceConfig

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := cfg.sentry.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			svc, err := cfg.build(ctx)
			if err != nil {
				return err
			}

			logger.Info("Starting courier server",
				slog.String("addr", cfg.server.ListenAddr()),
				slog.Any("github", cfg.github),
				slog.Any("llm", cfg.llm),
				slog.Any("clickup", cfg.clickup),
				slog.Bool("async", cfg.server.Async),
				slog.Bool("slack", cfg.slack.NewNotifier() != nil),
				slog.Bool("sentry", cfg.sentry.Enabled()),
			)

			serverOpts := []controller.Option{controller.WithAddr(cfg.server.ListenAddr())}
			if cfg.server.Async {
				pool := async.NewPool(svc.pipeline.Workers(), svc.pipeline.QueueSize())
				defer pool.Close()
				serverOpts = append(serverOpts, controller.WithAsyncPool(pool))
			}

			server, err := controller.NewServer(ctx, svc.webhook, svc.diagnostics, serverOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", cfg.server.ListenAddr()))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", cfg.server.ListenAddr()))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
