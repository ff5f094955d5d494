package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

var ingestCSV string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the extracted CSV into the candidates table",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ingestCSV
		if path == "" {
			path = cfg.CSVPath()
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open source csv: %w", err)
		}
		defer f.Close()

		t0 := time.Now()
		slog.Info("reading csv", "path", path)
		cands, err := microdata.Load(f)
		if err != nil {
			return err
		}
		slog.Info("csv parsed", "candidates", len(cands), "elapsed", time.Since(t0).Round(time.Second))

		dbh, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer dbh.Close()

		if err := st.PutCandidates(cmd.Context(), cands); err != nil {
			return err
		}
		slog.Info("ingest completed", "rows", len(cands), "elapsed", time.Since(t0).Round(time.Second))
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCSV, "csv", "", "path to the source CSV (defaults under data dir)")
	rootCmd.AddCommand(ingestCmd)
}
