package core

import (
	"testing"

	"github.com/huangsam/prlens/schema"
	"github.com/stretchr/testify/assert"
)

func ownerRules() []schema.OwnerRule {
	// Pre-sorted by prefix, as the config loader guarantees
	return []schema.OwnerRule{
		{Prefix: "src/", Owners: []string{"core-team"}},
		{Prefix: "src/payments/", Owners: []string{"payments-team"}},
		{Prefix: "web/", Owners: []string{"frontend-team", "design-team"}},
	}
}

func TestSuggestOwners(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		expected []string
	}{
		{
			name:     "no files",
			paths:    nil,
			expected: nil,
		},
		{
			name:     "no matching rule",
			paths:    []string{"docs/readme.md"},
			expected: nil,
		},
		{
			name:     "broad prefix",
			paths:    []string{"src/server.go"},
			expected: []string{"core-team"},
		},
		{
			name:     "longest prefix wins over broad one",
			paths:    []string{"src/payments/charge.go"},
			expected: []string{"payments-team"},
		},
		{
			name:     "union across files is sorted and deduplicated",
			paths:    []string{"web/app.tsx", "src/payments/refund.go", "web/theme.css"},
			expected: []string{"design-team", "frontend-team", "payments-team"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := make([]schema.ChangedFile, 0, len(tt.paths))
			for _, p := range tt.paths {
				files = append(files, schema.ChangedFile{Path: p, LinesAdded: 1})
			}
			owners := SuggestOwners(changeSet(files...), ownerRules())
			assert.Equal(t, tt.expected, owners)
		})
	}
}

// TestMatchOwnerRule_TieBreak verifies that equal-length prefixes resolve to
// the lexically first rule, which the pre-sorted slice encodes as scan order.
func TestMatchOwnerRule_TieBreak(t *testing.T) {
	rules := []schema.OwnerRule{
		{Prefix: "api/", Owners: []string{"alpha"}},
		{Prefix: "api/", Owners: []string{"beta"}},
	}

	rule, ok := matchOwnerRule("api/handler.go", rules)
	assert.True(t, ok)
	assert.Equal(t, []string{"alpha"}, rule.Owners)
}

func TestMatchOwnerRule_NoMatch(t *testing.T) {
	_, ok := matchOwnerRule("scripts/build.sh", ownerRules())
	assert.False(t, ok)
}
