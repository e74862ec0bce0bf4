// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport renders an analysis report using the configured output format.
func (ow *OutWriter) WriteReport(report schema.Report, set schema.ChangeSet, cfg *contract.Config, duration time.Duration) error {
	return WriteReportResults(report, set, cfg, duration)
}

// WriteOwners renders a suggested-owner listing for the changeset.
func (ow *OutWriter) WriteOwners(owners []string, set schema.ChangeSet, cfg *contract.Config) error {
	return WriteOwnerResults(owners, set, cfg)
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table
// output based on terminal width and table configuration.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the Added/Removed/Binary columns plus borders,
	// separators, and padding.
	baseWidth := 40

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
