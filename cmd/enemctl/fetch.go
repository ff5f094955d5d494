package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/edumetrics/enem-pipeline/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and extract the INEP microdata archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		t0 := time.Now()
		client := fetch.NewClient(cfg.HTTPTimeout(), cfg.RetryMaxAttempts,
			cfg.RetryBaseDelay(), cfg.RetryMaxDelay())

		slog.Info("downloading microdata", "url", cfg.SourceURL)
		if err := client.Download(cmd.Context(), cfg.SourceURL, cfg.ZipPath()); err != nil {
			return err
		}

		slog.Info("extracting archive", "zip", cfg.ZipPath())
		if err := fetch.Extract(cfg.ZipPath(), cfg.RawDir()); err != nil {
			return err
		}
		slog.Info("fetch completed", "dir", cfg.RawDir(), "elapsed", time.Since(t0).Round(time.Second))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
