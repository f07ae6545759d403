package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobsink/internal/config"
	"jobsink/internal/model"
	"jobsink/internal/pipeline"
	"jobsink/internal/provider"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsink",
	Short: "Job-board ETL — fetch, normalize, upsert",
	Long:  "jobsink pulls listings from Adzuna, Jooble, and RemoteOK, normalizes them into a common shape, and merges them into per-board tables.",
	// Default to `run` so that `jobsink` with no args performs a one-shot ETL.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSINK_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSINK_CONFIG env var > "./config.yaml".
// A .env file, if present, is loaded first so ${VAR} references in the
// config can resolve from it.
func loadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()

	if path == "" {
		if env := os.Getenv("JOBSINK_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

var providerNames = []string{"adzuna", "jooble", "remoteok"}

// resolveProviders validates the provider names given on the command line.
// No args means all providers.
func resolveProviders(args []string) ([]string, error) {
	if len(args) == 0 {
		return providerNames, nil
	}
	for _, arg := range args {
		known := false
		for _, name := range providerNames {
			if arg == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown provider %q (valid: adzuna, jooble, remoteok)", arg)
		}
	}
	return args, nil
}

// createProvider constructs the named provider, or reports that it cannot
// run because its credentials are missing from the config.
func createProvider(name string, cfg *config.Config, logger *slog.Logger) (model.Provider, bool) {
	switch name {
	case "adzuna":
		if cfg.Adzuna.AppID == "" || cfg.Adzuna.AppKey == "" {
			logger.Warn("adzuna credentials not configured, skipping", "provider", name)
			return nil, false
		}
		return provider.NewAdzuna(cfg.Adzuna.AppID, cfg.Adzuna.AppKey, nil), true
	case "jooble":
		if cfg.API.JoobleAPIKey == "" {
			logger.Warn("jooble api key not configured, skipping", "provider", name)
			return nil, false
		}
		return provider.NewJooble(cfg.API.JoobleAPIKey, nil), true
	case "remoteok":
		return provider.NewRemoteOK(nil), true
	default:
		logger.Warn("unknown provider, skipping", "provider", name)
		return nil, false
	}
}

func buildPipelines(names []string, cfg *config.Config, store model.RecordStore, logger *slog.Logger) []*pipeline.Pipeline {
	var pipelines []*pipeline.Pipeline
	for _, name := range names {
		p, ok := createProvider(name, cfg, logger)
		if !ok {
			continue
		}
		pipelines = append(pipelines, pipeline.New(p, store, logger))
		logger.Info("registered provider", "provider", name)
	}
	return pipelines
}
