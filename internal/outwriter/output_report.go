package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteReportResults outputs the analysis report, dispatching based on the output format configured.
func WriteReportResults(report schema.Report, set schema.ChangeSet, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportJSON(w, report, set)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, set, fmtFloat)
		}, "Wrote CSV")
	default:
		// Default to human-readable text
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, set, cfg, fmtFloat, duration)
		}, "Wrote report")
	}
}

// WriteOwnerResults renders only the suggested owners for a changeset.
func WriteOwnerResults(owners []string, set schema.ChangeSet, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			payload := struct {
				BaseRef         string   `json:"base_ref,omitempty"`
				TargetRef       string   `json:"target_ref,omitempty"`
				SuggestedOwners []string `json:"suggested_owners"`
			}{set.BaseRef, set.TargetRef, owners}
			return writeJSON(w, payload)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Suggested owners: %s\n", schema.FormatOwners(owners))
			return err
		}, "Wrote owners")
	}
}

// writeReportText generates the human-readable rendering. Ordering is fixed
// for determinism: score, reasons, owners, flagged files.
func writeReportText(w io.Writer, report schema.Report, set schema.ChangeSet, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	label := contract.GetPlainLabel(report.Score.Tier)
	if cfg.UseColors {
		label = contract.GetColorLabel(report.Score.Tier)
	}

	if set.BaseRef != "" {
		if _, err := fmt.Fprintf(w, "Changeset: %s..%s\n", set.BaseRef, set.TargetRef); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Complexity score: %s (%s)\n", fmtFloat(report.Score.NumericValue), label); err != nil {
		return err
	}

	if len(report.Score.Reasons) > 0 {
		if _, err := fmt.Fprintln(w, "Reasons:"); err != nil {
			return err
		}
		for _, reason := range report.Score.Reasons {
			if _, err := fmt.Fprintf(w, "  - %s\n", reason); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "Suggested owners: %s\n", schema.FormatOwners(report.SuggestedOwners)); err != nil {
		return err
	}

	if len(report.FlaggedFiles) > 0 {
		if _, err := fmt.Fprintf(w, "Flagged files (more than %d changed lines):\n", cfg.MaxLinesPerFile); err != nil {
			return err
		}
		if err := writeFlaggedTable(w, report.FlaggedFiles, cfg); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Analyzed %d files (+%d/-%d lines) in %v\n",
		set.FileCount(), totalAdded(set), totalRemoved(set), duration)
	return err
}

// writeFlaggedTable renders the flagged files as a table, in changeset order.
func writeFlaggedTable(w io.Writer, flagged []schema.ChangedFile, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Path", "Added", "Removed", "Binary"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, f := range flagged {
		data = append(data, []string{
			contract.TruncatePath(f.Path, GetMaxTablePathWidth(cfg)),
			strconv.Itoa(f.LinesAdded),
			strconv.Itoa(f.LinesRemoved),
			strconv.FormatBool(f.IsBinary),
		})
	}

	if err := table.Bulk(data); err != nil {
		return &contract.FormatError{Err: err}
	}
	if err := table.Render(); err != nil {
		return &contract.FormatError{Err: err}
	}
	return nil
}

// writeReportCSV writes one row per changed file with the run-level score
// columns repeated, which keeps the output flat for spreadsheet tooling.
func writeReportCSV(w io.Writer, report schema.Report, set schema.ChangeSet, fmtFloat func(float64) string) error {
	flagged := make(map[string]struct{}, len(report.FlaggedFiles))
	for _, f := range report.FlaggedFiles {
		flagged[f.Path] = struct{}{}
	}

	header := []string{
		"path",
		"lines_added",
		"lines_removed",
		"is_binary",
		"flagged",
		"score",
		"tier",
		"owners",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range set.Files {
			_, isFlagged := flagged[f.Path]
			rec := []string{
				f.Path,
				strconv.Itoa(f.LinesAdded),
				strconv.Itoa(f.LinesRemoved),
				strconv.FormatBool(f.IsBinary),
				strconv.FormatBool(isFlagged),
				fmtFloat(report.Score.NumericValue),
				contract.GetPlainLabel(report.Score.Tier),
				strings.Join(report.SuggestedOwners, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return &contract.FormatError{Err: err}
			}
		}
		return nil
	})
}

// writeReportJSON writes the full report plus the collected changeset.
func writeReportJSON(w io.Writer, report schema.Report, set schema.ChangeSet) error {
	type JSONReport struct {
		BaseRef         string                 `json:"base_ref,omitempty"`
		TargetRef       string                 `json:"target_ref,omitempty"`
		Score           schema.ComplexityScore `json:"score"`
		SuggestedOwners []string               `json:"suggested_owners"`
		FlaggedFiles    []schema.ChangedFile   `json:"flagged_files"`
		Files           []schema.ChangedFile   `json:"files"`
	}

	return writeJSON(w, JSONReport{
		BaseRef:         set.BaseRef,
		TargetRef:       set.TargetRef,
		Score:           report.Score,
		SuggestedOwners: report.SuggestedOwners,
		FlaggedFiles:    report.FlaggedFiles,
		Files:           set.Files,
	})
}

// totalAdded sums added lines across the changeset.
func totalAdded(set schema.ChangeSet) int {
	total := 0
	for _, f := range set.Files {
		total += f.LinesAdded
	}
	return total
}

// totalRemoved sums removed lines across the changeset.
func totalRemoved(set schema.ChangeSet) int {
	total := 0
	for _, f := range set.Files {
		total += f.LinesRemoved
	}
	return total
}
