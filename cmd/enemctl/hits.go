package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/edumetrics/enem-pipeline/internal/hits"
)

var hitsSample int

var hitsCmd = &cobra.Command{
	Use:   "hits",
	Short: "Compute per-subject hit counts and above/below-median labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbh, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		t0 := time.Now()
		cands, err := st.Candidates(ctx)
		if err != nil {
			return err
		}
		if hitsSample > 0 && hitsSample < len(cands) {
			cands = cands[:hitsSample]
		}
		slog.Info("candidates loaded", "rows", len(cands), "elapsed", time.Since(t0).Round(time.Millisecond))

		engine := hits.New(hits.WithWorkers(cfg.Workers))
		labeled, err := engine.Run(ctx, cands)
		if err != nil {
			return err
		}

		if err := st.PutLabeled(ctx, labeled); err != nil {
			return err
		}
		slog.Info("hits completed", "rows", len(labeled), "elapsed", time.Since(t0).Round(time.Second))
		return nil
	},
}

func init() {
	hitsCmd.Flags().IntVar(&hitsSample, "sample", 0, "limit the run to the first N candidates (0 = all)")
	rootCmd.AddCommand(hitsCmd)
}
