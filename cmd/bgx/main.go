// Command bgx serves the board game explorer and runs one-shot queries
// against a board game dataset.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/okian/bgexplorer/internal/config"
	"github.com/okian/bgexplorer/pkg/logger"
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by all subcommands.
type cli struct {
	cfg *config.Config

	// Flag overrides, applied over the loaded config.
	source   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "bgx",
		Short: "Explore a board game dataset",
		Long: `bgx loads a board game dataset (CSV, SQLite or PostgreSQL) and either
serves the interactive explorer over HTTP or answers one-shot queries.

Without a subcommand bgx runs "serve".`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runServe,
	}

	root.PersistentFlags().StringVar(&c.source, "source", "", "dataset CSV path, SQLite file or postgres:// DSN (overrides BGX_DATASET_SOURCE)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides BGX_LOG_LEVEL)")

	root.AddCommand(
		c.serveCmd(),
		c.topCmd(),
		c.filterCmd(),
		c.optionsCmd(),
		c.genCmd(),
	)
	return root
}

// setup loads the configuration and initializes logging. Logs go to the
// command's stderr so query output stays clean.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.source != "" {
		cfg.DatasetSource = c.source
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	c.cfg = cfg

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}
