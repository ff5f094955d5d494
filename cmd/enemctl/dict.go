package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Print the ingested-column data dictionary as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(microdata.Columns)
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
}
