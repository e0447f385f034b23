package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/core"
	"github.com/repolens/repolens/internal/contract"
)

// historyCmd runs the git aggregation pass on its own.
var historyCmd = &cobra.Command{
	Use:   "history [root-path]",
	Short: "Show the most changed paths from git history.",
	Long: `Aggregate git change history per path within the lookback window and
rank paths by commit count.

Each row carries commit count, churn (lines added plus deleted), bug-fix
commit count and the authors ordered by activity.

Examples:
  # Most changed paths over the default six-month window
  repolens history

  # Narrow the window and bound the log pass
  repolens history --lookback "30 days" --max-commits 500

  # Full records as JSON
  repolens history --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run history aggregation", err)
		}
	},
}
