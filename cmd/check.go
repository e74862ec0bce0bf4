package cmd

import (
	"github.com/huangsam/prlens/core"
	"github.com/huangsam/prlens/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd gates CI/CD pipelines on changeset complexity.
var checkCmd = &cobra.Command{
	Use:   "check [repo-path]",
	Short: "Fail when a changeset reaches the configured complexity tier.",
	Long: `Run the analysis and exit non-zero when the complexity tier reaches the
fail tier. Designed for CI/CD pipelines that want to force a split or an
extra reviewer on oversized changes.

The report is still printed before the gate is applied, so the pipeline
log shows why the check failed.

Examples:
  # Fail the build on HIGH complexity (default)
  prlens check --base-ref main

  # Be stricter: fail on MEDIUM too
  prlens check --base-ref main --fail-tier medium`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := contract.ValidateChangesetRef(cfg); err != nil {
			return err
		}
		return core.ExecuteCheck(rootCtx, cfg, gitClient, storeManager)
	},
}
