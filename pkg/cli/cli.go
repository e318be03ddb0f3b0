package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/courier/pkg/cli/config"
	"github.com/m-mizutani/courier/pkg/domain/types"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		envFile   string
		logger    *slog.Logger
	)

	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "dotenv file loaded before other flags are resolved; a missing file is ignored",
			Value:       ".env",
			Destination: &envFile,
			Sources:     cli.EnvVars("COURIER_ENV_FILE"),
		},
	}, loggerCfg.Flags()...)

	app := &cli.Command{
		Name:    types.ServiceName,
		Usage:   "Post AI summaries of GitHub pushes to ClickUp tasks",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := loadEnvFile(envFile); err != nil {
				return nil, err
			}

			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			return ctxlog.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdCheck(),
			cmdSend(),
		},
	}

	if err := app.Run(ctx, preloadEnv(args)); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// loadEnvFile exports variables of path that are not already set
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

// preloadEnv loads the dotenv file before any flag reads its env sources
func preloadEnv(args []string) []string {
	path := ".env"
	if v := os.Getenv("COURIER_ENV_FILE"); v != "" {
		path = v
	}
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			path = args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			path = v
		}
	}
	_ = loadEnvFile(path) // reported again by Before with the configured logger
	return args
}
