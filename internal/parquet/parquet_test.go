package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRunRecords(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(time.Second)
	params := `{"file_count_weight":1}`

	records := []schema.RunRecord{
		{
			RunID:        1,
			StartTime:    start,
			EndTime:      &end,
			RepoPath:     "/repo",
			BaseRef:      "main",
			TargetRef:    "HEAD",
			FilesChanged: 2,
			LinesAdded:   455,
			LinesRemoved: 30,
			Score:        242.5,
			Tier:         "HIGH",
			ConfigParams: &params,
		},
		{
			RunID:     2,
			StartTime: start,
			// Unfinished run, nullable columns stay nil
		},
	}

	exports := ConvertRunRecords(records)
	require.Len(t, exports, 2)

	assert.Equal(t, int64(1), exports[0].RunID)
	assert.Equal(t, "main", exports[0].BaseRef)
	assert.Equal(t, int32(455), exports[0].LinesAdded)
	assert.InDelta(t, 242.5, exports[0].Score, 0.001)
	require.NotNil(t, exports[0].EndTime)
	require.NotNil(t, exports[0].ConfigParams)
	assert.Equal(t, params, *exports[0].ConfigParams)

	assert.Nil(t, exports[1].EndTime)
	assert.Nil(t, exports[1].ConfigParams)
}

func TestConvertReportFileRecords(t *testing.T) {
	records := []schema.ReportFileRecord{
		{RunID: 1, Path: "auth/login.go", LinesAdded: 450, LinesRemoved: 30, Flagged: true},
		{RunID: 1, Path: "logo.png", IsBinary: true},
	}

	exports := ConvertReportFileRecords(records)
	require.Len(t, exports, 2)
	assert.Equal(t, "auth/login.go", exports[0].FilePath)
	assert.True(t, exports[0].Flagged)
	assert.True(t, exports[1].IsBinary)
	assert.False(t, exports[1].Flagged)
}

func TestWriteRunsParquet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	start := time.Now().UTC().Truncate(time.Millisecond)

	data := []RunExport{
		{RunID: 1, StartTime: start, RepoPath: "/repo", BaseRef: "main", TargetRef: "HEAD", Score: 12.5, Tier: "LOW"},
		{RunID: 2, StartTime: start, RepoPath: "/repo", BaseRef: "develop", TargetRef: "HEAD", Score: 88.0, Tier: "MEDIUM"},
	}
	require.NoError(t, WriteRunsParquet(data, path))

	rows, err := parquet.ReadFile[RunExport](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "main", rows[0].BaseRef)
	assert.InDelta(t, 88.0, rows[1].Score, 0.001)
	assert.WithinDuration(t, start, rows[0].StartTime, time.Millisecond)
}

func TestWriteReportFilesParquet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.parquet")

	data := []ReportFileExport{
		{RunID: 1, FilePath: "auth/login.go", LinesAdded: 450, LinesRemoved: 30, Flagged: true},
	}
	require.NoError(t, WriteReportFilesParquet(data, path))

	rows, err := parquet.ReadFile[ReportFileExport](path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "auth/login.go", rows[0].FilePath)
	assert.True(t, rows[0].Flagged)
}
