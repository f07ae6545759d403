package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jobsink/internal/pipeline"
	"jobsink/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run [provider...]",
	Short: "Run the ETL once and exit",
	Long:  "One-shot batch: fetch, normalize, and upsert for each named provider (default: all of adzuna, jooble, remoteok).",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	names, err := resolveProviders(args)
	if err != nil {
		logger.Error("invalid arguments", "error", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		sqlStore.Close()
		logger.Info("database connection closed")
	}()

	pipelines := buildPipelines(names, cfg, sqlStore, logger)
	if len(pipelines) == 0 {
		logger.Error("no providers to run")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runAll(ctx, pipelines, logger)
	return nil
}

// runAll runs each pipeline sequentially. A failed load aborts only that
// provider; the rest still run.
func runAll(ctx context.Context, pipelines []*pipeline.Pipeline, logger *slog.Logger) {
	for _, p := range pipelines {
		if ctx.Err() != nil {
			return
		}
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline failed", "provider", p.Name(), "error", err)
		}
	}
}
