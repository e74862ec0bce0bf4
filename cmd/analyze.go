package cmd

import (
	"github.com/huangsam/prlens/core"
	"github.com/huangsam/prlens/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full analysis pipeline on a changeset.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Score the review complexity of a changeset.",
	Long: `Collect the diff between two Git references and score its review complexity.

The score combines how many files changed, how many lines changed, and
whether the change touches configured risky paths (auth, payments,
migrations and so on). The score maps to a LOW, MEDIUM or HIGH tier with
human-readable reasons, plus suggested reviewers from path ownership rules
and a list of files that are large enough to deserve extra attention.

Examples:
  # Score the current branch against main
  prlens analyze --base-ref main

  # Score a specific range in another repository
  prlens analyze --base-ref v1.2.0 --target-ref release/1.3 ~/src/backend

  # Score a pre-computed diff (e.g. from a CI artifact)
  git diff main...HEAD | prlens analyze --diff-file -

  # Export findings to CSV for tracking
  prlens analyze --base-ref main --output csv --output-file report.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := contract.ValidateChangesetRef(cfg); err != nil {
			return err
		}
		return core.ExecuteAnalyze(rootCtx, cfg, gitClient, storeManager)
	},
}
