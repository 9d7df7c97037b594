// cmd/api/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/config"
	"github.com/jenny-yujl/marketingTrain/internal/logging"
)

// @title Campaign API
// @version 1.0
// @description Draft and submit advertising campaigns through a five-step wizard.
// @BasePath /

// app is the state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	logLevel string
	cfg      *config.Config
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "campaign-api",
		Short: "Campaign draft service",
		Long: `campaign-api stores advertising campaign drafts created by the five-step
wizard and serves them over a JSON API.

Storage is chosen by DATABASE_URL: unset for in-memory, postgres://... for
PostgreSQL or sqlite://path for SQLite.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		// Default behavior: serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	var seedProducts bool
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations to DATABASE_URL",
		Long: `Applies pending migrations for the configured PostgreSQL or SQLite database
and exits. With --seed the sample product catalogue is inserted when the
products table is empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.migrate(cmd.Context(), seedProducts)
		},
	}
	migrateCmd.Flags().BoolVar(&seedProducts, "seed", false, "Insert sample products into an empty catalogue")

	var steps int
	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.migrateDown(cmd.Context(), steps)
		},
	}
	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to revert")
	migrateCmd.AddCommand(migrateDownCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	loaded, err := config.LoadDotEnv()
	if err != nil {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return err
	}
	if !loaded {
		logger.Debug("no .env file found; using process environment")
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
