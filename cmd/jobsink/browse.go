package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobsink/internal/browse"
	"jobsink/internal/model"
	"jobsink/internal/store"
)

const browseLimit = 500

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored listings interactively (TUI)",
	Long:  "Shows the board picker TUI, then a scrollable view of the rows persisted for that board.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// browse reads only what the ETL already persisted; it never fetches.
var browseTables = map[string]model.TableSpec{
	"adzuna":   {Name: "adzuna_jobs", LabelColumn: "category"},
	"jooble":   {Name: "jooble_jobs", LabelColumn: "tags"},
	"remoteok": {Name: "remoteok_jobs", LabelColumn: "tags"},
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

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
	defer sqlStore.Close()

	ctx := context.Background()

	boards := make([]browse.Board, 0, len(providerNames))
	for _, name := range providerNames {
		spec := browseTables[name]
		count, err := sqlStore.Count(ctx, spec)
		if err != nil {
			logger.Error("failed to count rows", "table", spec.Name, "error", err)
			os.Exit(1)
		}
		boards = append(boards, browse.Board{Provider: name, Table: spec.Name, Rows: count})
	}

	for {
		choice, err := browse.RunBoardPicker(boards)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}

		board := boards[choice]
		records, err := sqlStore.List(ctx, browseTables[board.Provider], browseLimit)
		if err != nil {
			fmt.Printf("Error loading rows: %v\n", err)
			continue
		}

		wantQuit, err := browse.RunBrowseTUI(board, records)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
