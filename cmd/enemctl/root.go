package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edumetrics/enem-pipeline/internal/config"
	"github.com/edumetrics/enem-pipeline/internal/db"
	"github.com/edumetrics/enem-pipeline/internal/store"
)

var (
	cfgFile string
	debug   bool

	// Flag overrides for the most commonly changed settings.
	flagDataDir  string
	flagDBDriver string
	flagDBDSN    string
	flagWorkers  int

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "enemctl",
	Short: "ENEM 2017 microdata pipeline: fetch, ingest, hit counting, figures, regressions",
	Long: `enemctl drives the ENEM 2017 research pipeline: it downloads the INEP
microdata archive, loads the typed candidate records into a columnar
store, derives per-subject correct-answer counts with above/below
median labels, and produces the exploratory figures and nested OLS
regression tables.`,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initialize)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./enem-pipeline.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&flagDataDir, "data-dir", "", "data directory (overrides config)")
	pf.StringVar(&flagDBDriver, "db-driver", "", "database driver: sqlite|postgres (overrides config)")
	pf.StringVar(&flagDBDSN, "db-dsn", "", "database DSN (overrides config)")
	pf.IntVar(&flagWorkers, "workers", 0, "hit-counting worker count (overrides config)")
}

func initialize() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagDBDriver != "" {
		c.DBDriver = flagDBDriver
	}
	if flagDBDSN != "" {
		c.DBDSN = flagDBDSN
	}
	if flagWorkers > 0 {
		c.Workers = flagWorkers
	}
	cfg = c
}

// openStore connects to the configured database and wraps it in the
// SQL store. The caller owns the returned handle.
func openStore(ctx context.Context) (*sql.DB, *store.SQLStore, error) {
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return dbh, store.NewSQLStore(dbh), nil
}
