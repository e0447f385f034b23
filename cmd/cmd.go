// Package cmd defines the command-line interface for repolens.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("include", "i", "", "Comma-separated extension mappings to add (e.g., '.tf=Terraform,.proto=Protobuf')")
	rootCmd.PersistentFlags().StringP("exclude", "e", "", "Comma-separated gitignore-style patterns to skip")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Maximum directory depth to descend (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("include-extensionless", false, "Also scan files without an extension (Makefile, Dockerfile)")
	rootCmd.PersistentFlags().String("lookback", "6 months", "Time window for the git history pass")
	rootCmd.PersistentFlags().Int("max-commits", 0, "Bound the number of commits examined (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Skip the git history pass entirely")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent metrics workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display in table output")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
