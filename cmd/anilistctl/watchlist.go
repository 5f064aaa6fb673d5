package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"anilistbot/internal/watchlist"
)

var (
	exportUser string
	exportOut  string
	importIn   string
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Export or import Plan to Rewatch lists as CSV",
}

var watchlistExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one user's list to a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		store, closeStore, err := watchlist.Open(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		entries, err := store.List(ctx, exportUser)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(exportOut), 0o755); err != nil {
			return err
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := watchlist.WriteCSV(f, entries); err != nil {
			return err
		}
		logger.Info("exported watchlist", zap.String("user", exportUser), zap.Int("entries", len(entries)), zap.String("path", exportOut))
		return nil
	},
}

var watchlistImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Add every row of a CSV file to its user's list",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		f, err := os.Open(importIn)
		if err != nil {
			return err
		}
		defer f.Close()

		entries, err := watchlist.ReadCSV(f)
		if err != nil {
			return err
		}

		store, closeStore, err := watchlist.Open(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		added := importEntries(ctx, store, entries)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d entries from %s\n", added, len(entries), importIn)
		return nil
	},
}

func importEntries(ctx context.Context, store watchlist.Store, entries []watchlist.Entry) int {
	added := 0
	for _, e := range entries {
		ok, err := store.Add(ctx, e)
		if err != nil {
			logger.Warn("skipping row", zap.String("user", e.UserID), zap.Int("anime_id", e.AnimeID), zap.Error(err))
			continue
		}
		if ok {
			added++
		}
	}
	return added
}

func init() {
	watchlistExportCmd.Flags().StringVar(&exportUser, "user", "", "Discord user id (required)")
	watchlistExportCmd.Flags().StringVar(&exportOut, "out", "data/rewatch.csv", "Output CSV path")
	_ = watchlistExportCmd.MarkFlagRequired("user")

	watchlistImportCmd.Flags().StringVar(&importIn, "in", "data/rewatch.csv", "Input CSV path")

	watchlistCmd.AddCommand(watchlistExportCmd)
	watchlistCmd.AddCommand(watchlistImportCmd)
}
