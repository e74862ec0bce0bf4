// Package parquet provides data structures and functions for exporting run
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/prlens/schema"
	"github.com/parquet-go/parquet-go"
)

// RunExport represents a single recorded analysis run.
// This struct maps to the prlens_runs database table.
type RunExport struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RepoPath is the repository the changeset was collected from
	RepoPath string `parquet:"repo_path,snappy"`

	// BaseRef is the merge base of the analyzed changeset
	BaseRef string `parquet:"base_ref,snappy"`

	// TargetRef is the tip of the analyzed changeset
	TargetRef string `parquet:"target_ref,snappy"`

	// FilesChanged is the number of files in the changeset
	FilesChanged int32 `parquet:"files_changed,snappy"`

	// LinesAdded is the total added line count across the changeset
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesRemoved is the total removed line count across the changeset
	LinesRemoved int32 `parquet:"lines_removed,snappy"`

	// Score is the numeric complexity score produced by the run
	Score float64 `parquet:"score,snappy"`

	// Tier is the complexity tier label (LOW, MEDIUM, HIGH)
	Tier string `parquet:"tier,snappy"`

	// ConfigParams contains the JSON-encoded weighting configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ReportFileExport represents one changed file within a recorded run.
// This struct maps to the prlens_report_files database table.
type ReportFileExport struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// FilePath is the relative path to the file in the repository
	FilePath string `parquet:"file_path,snappy"`

	// LinesAdded is the number of lines added to this file
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesRemoved is the number of lines removed from this file
	LinesRemoved int32 `parquet:"lines_removed,snappy"`

	// IsBinary indicates the diff had no countable line changes
	IsBinary bool `parquet:"is_binary,snappy"`

	// Flagged indicates the file exceeded the per-file line limit
	Flagged bool `parquet:"flagged,snappy"`
}

// WriteRunsParquet writes a slice of RunExport structs to a Parquet file.
func WriteRunsParquet(data []RunExport, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RunExport struct tags
	writer := parquet.NewGenericWriter[RunExport](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteReportFilesParquet writes a slice of ReportFileExport structs to a Parquet file.
func WriteReportFilesParquet(data []ReportFileExport, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportFileExport struct tags
	writer := parquet.NewGenericWriter[ReportFileExport](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to RunExport for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunExport {
	result := make([]RunExport, len(records))
	for i, record := range records {
		result[i] = RunExport{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			RepoPath:     record.RepoPath,
			BaseRef:      record.BaseRef,
			TargetRef:    record.TargetRef,
			FilesChanged: record.FilesChanged,
			LinesAdded:   record.LinesAdded,
			LinesRemoved: record.LinesRemoved,
			Score:        record.Score,
			Tier:         record.Tier,
			ConfigParams: record.ConfigParams,
		}
	}
	return result
}

// ConvertReportFileRecords converts schema.ReportFileRecord to ReportFileExport for Parquet export.
func ConvertReportFileRecords(records []schema.ReportFileRecord) []ReportFileExport {
	result := make([]ReportFileExport, len(records))
	for i, record := range records {
		result[i] = ReportFileExport{
			RunID:        record.RunID,
			FilePath:     record.Path,
			LinesAdded:   record.LinesAdded,
			LinesRemoved: record.LinesRemoved,
			IsBinary:     record.IsBinary,
			Flagged:      record.Flagged,
		}
	}
	return result
}
