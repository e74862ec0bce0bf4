package iocache

import (
	"time"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, repoPath, baseRef, targetRef string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, repoPath, baseRef, targetRef, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, set schema.ChangeSet, report schema.Report) error {
	args := m.Called(runID, endTime, set, report)
	return args.Error(0)
}

// RecordReportFiles implements the HistoryStore interface.
func (m *MockHistoryStore) RecordReportFiles(runID int64, set schema.ChangeSet, report schema.Report) error {
	args := m.Called(runID, set, report)
	return args.Error(0)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllReportFiles implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllReportFiles() ([]schema.ReportFileRecord, error) {
	args := m.Called()
	files, _ := args.Get(0).([]schema.ReportFileRecord)
	return files, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
