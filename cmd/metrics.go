package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/core"
	"github.com/repolens/repolens/internal/contract"
)

// metricsCmd runs discovery and metrics collection without git.
var metricsCmd = &cobra.Command{
	Use:   "metrics [root-path]",
	Short: "Compute line and complexity metrics without touching git.",
	Long: `Walk a source tree and compute per-file metrics only: line counts,
comment and blank line classification, a branching-keyword complexity
signal and a function-count estimate.

Useful when the tree is not a repository, or when you want a fast pass
that never shells out to git.

Examples:
  # Metrics for the current directory
  repolens metrics

  # Add a custom extension mapping
  repolens metrics --include '.proto=Protobuf'

  # Export per-file metrics to CSV
  repolens metrics --output csv --output-file metrics.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run metrics collection", err)
		}
	},
}
