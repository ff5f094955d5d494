package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/edumetrics/enem-pipeline/internal/analysis"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
	"github.com/edumetrics/enem-pipeline/internal/storage"
)

var regressCmd = &cobra.Command{
	Use:   "regress",
	Short: "Fit the nested OLS models and write summary tables per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbh, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		labeled, err := st.Labeled(ctx)
		if err != nil {
			return err
		}
		artifacts, err := storage.NewFSStore(cfg.DataDir)
		if err != nil {
			return err
		}

		for _, subject := range microdata.Subjects() {
			t0 := time.Now()
			obs := analysis.BuildArea(labeled, subject)
			models, err := analysis.RunModels(obs)
			if err != nil {
				return fmt.Errorf("area %s: %w", subject.Code(), err)
			}
			table, err := analysis.SummaryTable(models)
			if err != nil {
				return fmt.Errorf("area %s: %w", subject.Code(), err)
			}
			key := fmt.Sprintf("tables/regressions/regression_table_%s.csv", subject.Code())
			path, err := artifacts.Put(key, bytes.NewReader(table))
			if err != nil {
				return err
			}
			slog.Info("regression table saved",
				"area", subject.Code(), "observations", len(obs),
				"path", path, "elapsed", time.Since(t0).Round(time.Millisecond))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regressCmd)
}
