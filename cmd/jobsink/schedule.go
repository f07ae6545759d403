package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"jobsink/internal/store"
)

var scheduleEvery time.Duration

var scheduleCmd = &cobra.Command{
	Use:   "schedule [provider...]",
	Short: "Run the ETL on an interval",
	Long:  "Runs one ETL cycle immediately, then repeats on the --every interval until SIGINT/SIGTERM.",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().DurationVar(&scheduleEvery, "every", 6*time.Hour, "interval between ETL cycles")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	names, err := resolveProviders(args)
	if err != nil {
		logger.Error("invalid arguments", "error", err)
		os.Exit(1)
	}
	if scheduleEvery <= 0 {
		logger.Error("--every must be positive", "every", scheduleEvery.String())
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

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", scheduleEvery), func() {
		logger.Info("scheduled cycle started", "providers", len(pipelines))
		runAll(ctx, pipelines, logger)
	}); err != nil {
		logger.Error("failed to register cron job", "error", err)
		os.Exit(1)
	}

	// Populate the tables without waiting for the first tick.
	runAll(ctx, pipelines, logger)

	c.Start()
	logger.Info("scheduler started", "every", scheduleEvery.String())

	<-ctx.Done()
	c.Stop()
	logger.Info("scheduler stopped")
	return nil
}
