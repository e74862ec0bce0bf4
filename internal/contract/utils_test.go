package contract

import (
	"testing"

	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPathPattern(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		match   bool
	}{
		{"empty pattern", "auth/login.go", "", false},
		{"directory prefix", "auth/login.go", "auth/", true},
		{"nested directory", "src/auth/login.go", "auth/", true},
		{"directory miss", "docs/auth.md", "auth/", false},
		{"extension suffix", "db/schema.sql", ".sql", true},
		{"extension miss", "db/schema.go", ".sql", false},
		{"substring", "pkg/payments_util.go", "payments", true},
		{"glob on base name", "migrations/0001_init.sql", "*.sql", true},
		{"glob miss", "migrations/0001_init.go", "*.sql", false},
		{"glob full path", "auth/login.go", "auth/*.go", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, MatchPathPattern(tt.path, tt.pattern))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path untouched", "a/b.go", 20, "a/b.go"},
		{"long path keeps tail", "internal/service/handlers/payment.go", 20, "...ndlers/payment.go"},
		{"width too small to truncate", "internal/service.go", 3, "internal/service.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.expected, got)
			if len(tt.path) > tt.maxWidth && tt.maxWidth > 3 {
				assert.Len(t, got, tt.maxWidth)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"yes", "YES", "true", "True", "1"}
	for _, s := range truthy {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}

	falsy := []string{"no", "NO", "false", "False", "0"}
	for _, s := range falsy {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "HIGH", GetPlainLabel(schema.HighTier))
	assert.Equal(t, "MEDIUM", GetPlainLabel(schema.MediumTier))
	assert.Equal(t, "LOW", GetPlainLabel(schema.LowTier))
}

func TestGetColorLabel(t *testing.T) {
	// Color output may be stripped in test environments, so only assert
	// that the tier text survives.
	assert.Contains(t, GetColorLabel(schema.HighTier), "HIGH")
	assert.Contains(t, GetColorLabel(schema.MediumTier), "MEDIUM")
	assert.Contains(t, GetColorLabel(schema.LowTier), "LOW")
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Contains(t, path, ".prlens_history.db")
}
