// Package core implements the analysis pipeline: collect, score, suggest, render.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/internal/outwriter"
	"github.com/huangsam/prlens/schema"
)

// GetReport runs the pipeline and returns the report plus the collected
// changeset. This is the data entrypoint shared by the CLI and MCP handlers.
func GetReport(ctx context.Context, cfg *contract.Config, client contract.GitClient) (schema.Report, schema.ChangeSet, error) {
	set, err := Collect(ctx, cfg, client)
	if err != nil {
		return schema.Report{}, schema.ChangeSet{}, err
	}

	report := BuildReport(set, cfg)
	return report, set, nil
}

// BuildReport derives the report from an already-collected changeset.
// It is a pure function: no I/O, no mutation of the changeset.
func BuildReport(set schema.ChangeSet, cfg *contract.Config) schema.Report {
	return schema.Report{
		Score:           Score(set, cfg),
		SuggestedOwners: SuggestOwners(set, cfg.Owners),
		FlaggedFiles:    FlagLargeFiles(set, cfg.MaxLinesPerFile),
	}
}

// ExecuteAnalyze runs the full pipeline, records the run in the history
// store when one is configured, and renders the report.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) error {
	start := time.Now()

	runID := beginTracking(mgr, cfg, start)

	report, set, err := GetReport(ctx, cfg, client)
	if err != nil {
		return err
	}

	finishTracking(mgr, runID, set, report)

	ow := outwriter.NewOutWriter()
	return ow.WriteReport(report, set, cfg, time.Since(start))
}

// ExecuteOwners runs the collector and suggester only.
func ExecuteOwners(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	set, err := Collect(ctx, cfg, client)
	if err != nil {
		return err
	}

	owners := SuggestOwners(set, cfg.Owners)
	ow := outwriter.NewOutWriter()
	return ow.WriteOwners(owners, set, cfg)
}

// ExecuteCheck runs the pipeline and fails when the computed tier reaches
// the configured fail tier. Used as a CI/CD gate.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) error {
	start := time.Now()

	report, set, err := GetReport(ctx, cfg, client)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteReport(report, set, cfg, time.Since(start)); err != nil {
		return err
	}

	if schema.TierAtLeast(report.Score.Tier, cfg.FailTier) {
		return fmt.Errorf("complexity tier %s reached the fail tier %s (score %.2f)",
			report.Score.Tier, cfg.FailTier, report.Score.NumericValue)
	}
	return nil
}

// beginTracking opens a history run. Tracking failures never abort an
// analysis; they only warn.
func beginTracking(mgr contract.StoreManager, cfg *contract.Config, start time.Time) int64 {
	if mgr == nil {
		return 0
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return 0
	}

	configParams := map[string]any{
		"file_count_weight":  cfg.FileCountWeight,
		"line_count_weight":  cfg.LineCountWeight,
		"max_lines_per_file": cfg.MaxLinesPerFile,
		"threshold_medium":   cfg.Thresholds.Medium,
		"threshold_high":     cfg.Thresholds.High,
	}
	runID, err := store.BeginRun(start, cfg.RepoPath, cfg.BaseRef, cfg.TargetRef, configParams)
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return 0
	}
	return runID
}

// finishTracking records the outcome of a run opened by beginTracking.
func finishTracking(mgr contract.StoreManager, runID int64, set schema.ChangeSet, report schema.Report) {
	if mgr == nil || runID <= 0 {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	if err := store.RecordReportFiles(runID, set, report); err != nil {
		contract.LogWarn("Failed to record report files", err)
	}
	if err := store.EndRun(runID, time.Now(), set, report); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}
