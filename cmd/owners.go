package cmd

import (
	"github.com/huangsam/prlens/core"
	"github.com/huangsam/prlens/internal/contract"
	"github.com/spf13/cobra"
)

// ownersCmd suggests reviewers for a changeset without scoring it.
var ownersCmd = &cobra.Command{
	Use:   "owners [repo-path]",
	Short: "Suggest reviewers for a changeset.",
	Long: `List the owners whose path rules match the files in a changeset.

For every changed file, the longest matching prefix rule from the owners
section of the config wins. The output is the sorted union of the winning
owners, so a change confined to payments/ surfaces the payments reviewers
rather than the catch-all maintainers.

Examples:
  # Who should review the current branch?
  prlens owners --base-ref main

  # As JSON for use in CI tooling
  prlens owners --base-ref main --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := contract.ValidateChangesetRef(cfg); err != nil {
			return err
		}
		return core.ExecuteOwners(rootCtx, cfg, gitClient)
	},
}
