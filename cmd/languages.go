package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/core"
	"github.com/repolens/repolens/internal/contract"
)

// languagesCmd prints the active extension-to-language mapping.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the extensions a scan would pick up.",
	Long: `Print the active extension-to-language mapping, including any entries
added with --include, and whether each language gets full metrics or
line counts only.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLanguages(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list languages", err)
		}
	},
}
