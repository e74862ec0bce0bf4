package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) contract.HistoryStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun() (schema.ChangeSet, schema.Report) {
	set := schema.ChangeSet{
		BaseRef:   "main",
		TargetRef: "HEAD",
		Files: []schema.ChangedFile{
			{Path: "auth/login.go", LinesAdded: 450, LinesRemoved: 30},
			{Path: "docs/readme.md", LinesAdded: 5},
		},
	}
	report := schema.Report{
		Score: schema.ComplexityScore{
			NumericValue: 242.5,
			Tier:         schema.HighTier,
			Reasons:      []string{"risky path match: auth/login.go"},
		},
		SuggestedOwners: []string{"security-team"},
		FlaggedFiles:    []schema.ChangedFile{set.Files[0]},
	}
	return set, report
}

func TestNewHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	// Every operation is a silent no-op when tracking is disabled
	runID, err := store.BeginRun(time.Now(), "/repo", "main", "HEAD", nil)
	assert.NoError(t, err)
	assert.Zero(t, runID)

	set, report := sampleRun()
	assert.NoError(t, store.EndRun(runID, time.Now(), set, report))
	assert.NoError(t, store.RecordReportFiles(runID, set, report))
	assert.NoError(t, store.Clear())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)

	assert.NoError(t, store.Close())
}

func TestNewHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	assert.Error(t, err)
}

func TestHistoryStore_SQLiteLifecycle(t *testing.T) {
	store := newSQLiteStore(t)
	set, report := sampleRun()

	start := time.Now().UTC().Truncate(time.Millisecond)
	configParams := map[string]any{"weights.file_count": 1.0}

	runID, err := store.BeginRun(start, "/repo", "main", "HEAD", configParams)
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	require.NoError(t, store.RecordReportFiles(runID, set, report))

	end := start.Add(25 * time.Millisecond)
	require.NoError(t, store.EndRun(runID, end, set, report))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(start))
	assert.Equal(t, int64(1), status.TableSizes["prlens_runs"])
	assert.Equal(t, int64(2), status.TableSizes["prlens_report_files"])

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(end))
	assert.Equal(t, "/repo", run.RepoPath)
	assert.Equal(t, "main", run.BaseRef)
	assert.Equal(t, "HEAD", run.TargetRef)
	assert.Equal(t, int32(2), run.FilesChanged)
	assert.Equal(t, int32(455), run.LinesAdded)
	assert.Equal(t, int32(30), run.LinesRemoved)
	assert.InDelta(t, 242.5, run.Score, 0.001)
	assert.Equal(t, "HIGH", run.Tier)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, "weights.file_count")

	files, err := store.GetAllReportFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	// Ordered by run_id then file_path
	assert.Equal(t, "auth/login.go", files[0].Path)
	assert.True(t, files[0].Flagged)
	assert.Equal(t, "docs/readme.md", files[1].Path)
	assert.False(t, files[1].Flagged)

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
}

func TestHistoryStore_UnfinishedRun(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Now().UTC().Truncate(time.Millisecond)
	runID, err := store.BeginRun(start, "/repo", "main", "HEAD", nil)
	require.NoError(t, err)

	// A run that never reached EndRun has null completion columns
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Nil(t, runs[0].EndTime)
	assert.Zero(t, runs[0].FilesChanged)
	assert.Empty(t, runs[0].Tier)
}

func TestHistoryStore_MultipleRuns(t *testing.T) {
	store := newSQLiteStore(t)
	set, report := sampleRun()

	first := time.Now().UTC().Truncate(time.Millisecond)
	second := first.Add(time.Minute)

	firstID, err := store.BeginRun(first, "/repo", "main", "HEAD", nil)
	require.NoError(t, err)
	secondID, err := store.BeginRun(second, "/repo", "develop", "HEAD", nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(secondID, second.Add(time.Second), set, report))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, secondID, status.LastRunID)
	assert.True(t, status.OldestRunTime.Equal(first))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, firstID, runs[0].RunID)
	assert.Equal(t, secondID, runs[1].RunID)
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`prlens_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"prlens_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, "prlens_runs", quoteTableName(runsTable, schema.SQLiteBackend))
}
