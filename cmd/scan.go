package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/core"
	"github.com/repolens/repolens/internal/contract"
)

// scanCmd runs the full discovery, metrics and history pipeline.
var scanCmd = &cobra.Command{
	Use:   "scan [root-path]",
	Short: "Scan a source tree and merge metrics with git change history.",
	Long: `Walk a source tree, compute per-file line and complexity metrics, and
join them with git change history into a single report.

The scan helps you:
- See which files carry the most code and branching logic
- Spot files that both rank high on complexity and change often
- Find binary or unreadable files hiding in the tree
- Get per-language file counts for the whole tree

Examples:
  # Scan the current directory
  repolens scan

  # Scan another tree with a one-year history window
  repolens scan ~/src/service --lookback "1 year"

  # Skip git entirely for a plain metrics pass
  repolens scan --no-history

  # Export the full report for downstream tooling
  repolens scan --output parquet --output-file report.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
