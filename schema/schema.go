// Package schema has configs, models and global variables for all parts of prlens.
package schema

// ChangedFile represents the diff statistics for a single file in a changeset.
// Instances are immutable once collected; binary files carry zero line counts.
type ChangedFile struct {
	Path         string `json:"path"`          // Repository-relative path, forward slashes
	LinesAdded   int    `json:"lines_added"`   // Lines added in this changeset
	LinesRemoved int    `json:"lines_removed"` // Lines removed in this changeset
	IsBinary     bool   `json:"is_binary"`     // True when Git reports no line stats
}

// TotalLines returns the total number of changed lines for the file.
func (f ChangedFile) TotalLines() int {
	return f.LinesAdded + f.LinesRemoved
}

// ChangeSet is the ordered collection of file diffs for one reviewed unit of
// work. Order matches what the diff source reported; paths are unique.
type ChangeSet struct {
	BaseRef   string        `json:"base_ref,omitempty"`   // Base Git reference (empty for pre-computed diffs)
	TargetRef string        `json:"target_ref,omitempty"` // Target Git reference
	Files     []ChangedFile `json:"files"`
}

// FileCount returns the number of files in the changeset.
func (cs ChangeSet) FileCount() int {
	return len(cs.Files)
}

// TotalLines returns the total number of changed lines across all files.
func (cs ChangeSet) TotalLines() int {
	total := 0
	for _, f := range cs.Files {
		total += f.TotalLines()
	}
	return total
}

// ComplexityScore is the derived complexity of a changeset. It is a pure
// function of the ChangeSet and the weighting configuration: identical inputs
// always produce identical values.
type ComplexityScore struct {
	NumericValue float64  `json:"numeric_value"` // Weighted score, >= 0
	Tier         Tier     `json:"tier"`          // Coarse bucket for the numeric value
	Reasons      []string `json:"reasons"`       // Contributing factors, in evaluation order
}

// Report bundles everything a single analysis run produces. It is rendered
// once and discarded; nothing here outlives the invocation.
type Report struct {
	Score           ComplexityScore `json:"score"`
	SuggestedOwners []string        `json:"suggested_owners"` // Sorted for determinism
	FlaggedFiles    []ChangedFile   `json:"flagged_files"`    // ChangeSet order
}

// RiskyPattern pairs a path pattern with its extra scoring weight.
// A file matching the pattern has its score contribution multiplied by Weight.
type RiskyPattern struct {
	Pattern string
	Weight  float64
}

// OwnerRule maps a path prefix to the owners responsible for it.
// Longest prefix wins when several rules match the same file.
type OwnerRule struct {
	Prefix string
	Owners []string
}

// TierThresholds holds the cut points between tiers on the numeric score.
// Scores below Medium are LOW, below High are MEDIUM, and HIGH otherwise.
// Medium must be strictly less than High.
type TierThresholds struct {
	Medium float64
	High   float64
}
