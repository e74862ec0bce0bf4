package core

import (
	"strings"

	"github.com/huangsam/prlens/schema"
)

// SuggestOwners maps the changed paths to reviewers via the prefix rules.
//
// For each file, the longest matching prefix wins so a narrow owner beats a
// broad one; ties on length fall back to lexical prefix order, which the
// config loader guarantees by sorting the rules. The result is the sorted
// union of the winning owners. An empty result means no rule matched and the
// caller decides the fallback.
func SuggestOwners(set schema.ChangeSet, rules []schema.OwnerRule) []string {
	var union []string
	for _, f := range set.Files {
		if rule, ok := matchOwnerRule(f.Path, rules); ok {
			union = append(union, rule.Owners...)
		}
	}
	return schema.SortedOwnerSet(union)
}

// matchOwnerRule finds the winning rule for a path. Rules are pre-sorted
// lexically, and the scan keeps the first rule of the longest prefix length,
// which implements the tie-break.
func matchOwnerRule(path string, rules []schema.OwnerRule) (schema.OwnerRule, bool) {
	best := schema.OwnerRule{}
	found := false
	for _, rule := range rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if !found || len(rule.Prefix) > len(best.Prefix) {
			best = rule
			found = true
		}
	}
	return best, found
}
