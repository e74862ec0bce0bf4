// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/prlens/schema"
)

// GitClient defines the necessary operations for changeset collection.
// This allows the core pipeline logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// DiffNumstat returns the raw `git diff --numstat` output between two refs.
	DiffNumstat(ctx context.Context, repoPath string, baseRef, targetRef string) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// StoreManager defines the interface for accessing the history store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking analysis runs.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID
	BeginRun(startTime time.Time, repoPath, baseRef, targetRef string, configParams map[string]any) (int64, error)

	// EndRun updates the run with its completion data
	EndRun(runID int64, endTime time.Time, set schema.ChangeSet, report schema.Report) error

	// RecordReportFiles stores the per-file rows for a run
	RecordReportFiles(runID int64, set schema.ChangeSet, report schema.Report) error

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllReportFiles returns every recorded file row, oldest run first
	GetAllReportFiles() ([]schema.ReportFileRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs and file rows
	Clear() error

	// Close closes the underlying connection
	Close() error
}
