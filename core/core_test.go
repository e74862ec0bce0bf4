package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/huangsam/prlens/internal/iocache"
	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetReport(t *testing.T) {
	cfg := scoringConfig()
	cfg.BaseRef = "main"
	cfg.TargetRef = "HEAD"
	cfg.Owners = []schema.OwnerRule{{Prefix: "auth/", Owners: []string{"security-team"}}}

	client := &fakeGitClient{numstat: []byte("450\t30\tauth/login.go\n5\t0\tdocs/readme.md\n")}
	report, set, err := GetReport(context.Background(), cfg, client)
	require.NoError(t, err)

	assert.Equal(t, 2, set.FileCount())
	assert.Equal(t, schema.HighTier, report.Score.Tier)
	assert.Equal(t, []string{"security-team"}, report.SuggestedOwners)
	require.Len(t, report.FlaggedFiles, 1)
	assert.Equal(t, "auth/login.go", report.FlaggedFiles[0].Path)
}

func TestExecuteAnalyze_RecordsHistory(t *testing.T) {
	cfg := scoringConfig()
	cfg.BaseRef = "main"
	cfg.TargetRef = "HEAD"
	cfg.RepoPath = "/repo"
	cfg.Output = schema.TextOut
	cfg.Precision = 1
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.txt")

	store := &iocache.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, "/repo", "main", "HEAD", mock.Anything).Return(int64(7), nil)
	store.On("RecordReportFiles", int64(7), mock.Anything, mock.Anything).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	client := &fakeGitClient{numstat: []byte("10\t2\tsrc/a.go\n")}
	require.NoError(t, ExecuteAnalyze(context.Background(), cfg, client, mgr))

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestExecuteAnalyze_NilStoreSkipsTracking(t *testing.T) {
	cfg := scoringConfig()
	cfg.BaseRef = "main"
	cfg.TargetRef = "HEAD"
	cfg.Output = schema.TextOut
	cfg.Precision = 1
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.txt")

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(nil)

	client := &fakeGitClient{numstat: []byte("10\t2\tsrc/a.go\n")}
	require.NoError(t, ExecuteAnalyze(context.Background(), cfg, client, mgr))
}

func TestExecuteCheck(t *testing.T) {
	tests := []struct {
		name     string
		failTier schema.Tier
		numstat  string
		wantErr  bool
	}{
		{
			name:     "small change passes high gate",
			failTier: schema.HighTier,
			numstat:  "3\t1\tdocs/readme.md\n",
			wantErr:  false,
		},
		{
			name:     "large change trips high gate",
			failTier: schema.HighTier,
			numstat:  "800\t200\tsrc/engine.go\n",
			wantErr:  true,
		},
		{
			name:     "medium gate trips on medium change",
			failTier: schema.MediumTier,
			numstat:  "150\t0\tsrc/engine.go\n",
			wantErr:  true,
		},
		{
			name:     "low gate always trips",
			failTier: schema.LowTier,
			numstat:  "1\t0\tdocs/readme.md\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scoringConfig()
			cfg.BaseRef = "main"
			cfg.TargetRef = "HEAD"
			cfg.Output = schema.TextOut
			cfg.Precision = 1
			cfg.FailTier = tt.failTier
			cfg.OutputFile = filepath.Join(t.TempDir(), "report.txt")

			client := &fakeGitClient{numstat: []byte(tt.numstat)}
			err := ExecuteCheck(context.Background(), cfg, client, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecuteOwners(t *testing.T) {
	cfg := scoringConfig()
	cfg.BaseRef = "main"
	cfg.TargetRef = "HEAD"
	cfg.Output = schema.TextOut
	cfg.Precision = 1
	cfg.Owners = []schema.OwnerRule{{Prefix: "src/", Owners: []string{"core-team"}}}
	cfg.OutputFile = filepath.Join(t.TempDir(), "owners.txt")

	client := &fakeGitClient{numstat: []byte("10\t2\tsrc/a.go\n")}
	require.NoError(t, ExecuteOwners(context.Background(), cfg, client))
}
