package core

import (
	"fmt"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/schema"
)

// Score computes the complexity score for a changeset.
//
// Each file contributes (file_count_weight + line_count_weight * lines
// changed), multiplied by the heaviest risky-path weight matching its path.
// The sum is bucketed into a tier by the configured thresholds. Reasons are
// collected in evaluation order: large file count, large line count, then one
// per risky match in changeset order.
func Score(set schema.ChangeSet, cfg *contract.Config) schema.ComplexityScore {
	score := schema.ComplexityScore{Tier: schema.LowTier}
	if set.FileCount() == 0 {
		return score
	}

	if set.FileCount() >= cfg.LargeFileCount {
		score.Reasons = append(score.Reasons,
			fmt.Sprintf("large file count: %d files changed (threshold %d)", set.FileCount(), cfg.LargeFileCount))
	}
	if set.TotalLines() >= cfg.LargeLineCount {
		score.Reasons = append(score.Reasons,
			fmt.Sprintf("large line count: %d lines changed (threshold %d)", set.TotalLines(), cfg.LargeLineCount))
	}

	var total float64
	for _, f := range set.Files {
		contribution := cfg.FileCountWeight + cfg.LineCountWeight*float64(f.TotalLines())

		multiplier, pattern := riskyMultiplier(f.Path, cfg.RiskyPatterns)
		if pattern != "" {
			score.Reasons = append(score.Reasons,
				fmt.Sprintf("risky path match: %s (pattern %q, weight %.1f)", f.Path, pattern, multiplier))
			contribution *= multiplier
		}
		total += contribution
	}

	score.NumericValue = total
	score.Tier = schema.TierFor(total, cfg.Thresholds)
	return score
}

// riskyMultiplier returns the heaviest matching risky-path weight for a path,
// along with the pattern that supplied it. Returns (1, "") when nothing
// matches.
func riskyMultiplier(path string, patterns []schema.RiskyPattern) (float64, string) {
	multiplier := 1.0
	matched := ""
	for _, p := range patterns {
		if !contract.MatchPathPattern(path, p.Pattern) {
			continue
		}
		if matched == "" || p.Weight > multiplier {
			multiplier = p.Weight
			matched = p.Pattern
		}
	}
	if matched == "" {
		return 1.0, ""
	}
	return multiplier, matched
}

// FlagLargeFiles returns the files whose total changed lines exceed the
// configured per-file threshold, in changeset order.
func FlagLargeFiles(set schema.ChangeSet, maxLinesPerFile int) []schema.ChangedFile {
	var flagged []schema.ChangedFile
	for _, f := range set.Files {
		if f.TotalLines() > maxLinesPerFile {
			flagged = append(flagged, f)
		}
	}
	return flagged
}
