package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
	return err == nil
}

func TestMigrateHistory_SQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, runsTable))
	assert.True(t, tableExists(t, dbPath, reportFilesTable))

	// Up is idempotent
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, runsTable))
	assert.False(t, tableExists(t, dbPath, reportFilesTable))
}

func TestMigrateHistory_SpecificVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, runsTable))
}

func TestMigrateHistory_NoneBackendRejected(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
}
