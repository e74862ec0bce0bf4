package schema

import "time"

// HistoryStatus reports the health and contents of the history store.
type HistoryStatus struct {
	Backend       string           // Backend name (sqlite, mysql, postgresql, none)
	Connected     bool             // Whether a database connection exists
	TotalRuns     int64            // Number of recorded analysis runs
	LastRunID     int64            // Most recent run identifier
	LastRunTime   time.Time        // Timestamp of the most recent run
	OldestRunTime time.Time        // Timestamp of the oldest run
	TableSizes    map[string]int64 // Row counts keyed by table name
}

// RunRecord is one analysis run as stored in the history store.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	RepoPath     string
	BaseRef      string
	TargetRef    string
	FilesChanged int32
	LinesAdded   int32
	LinesRemoved int32
	Score        float64
	Tier         string
	ConfigParams *string // JSON-encoded weighting configuration
}

// ReportFileRecord is one changed file within a recorded run.
type ReportFileRecord struct {
	RunID        int64
	Path         string
	LinesAdded   int32
	LinesRemoved int32
	IsBinary     bool
	Flagged      bool
}
