package main

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/edumetrics/enem-pipeline/internal/analysis"
	"github.com/edumetrics/enem-pipeline/internal/storage"
)

const figureKey = "figures/hits_by_exam_enem2017.png"

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the hits-vs-score scatter figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbh, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		t0 := time.Now()
		labeled, err := st.Labeled(ctx)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := analysis.RenderHitsFigure(labeled, &buf); err != nil {
			return err
		}

		artifacts, err := storage.NewFSStore(cfg.DataDir)
		if err != nil {
			return err
		}
		path, err := artifacts.Put(figureKey, &buf)
		if err != nil {
			return err
		}
		slog.Info("figure saved", "path", path, "rows", len(labeled), "elapsed", time.Since(t0).Round(time.Second))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
}
