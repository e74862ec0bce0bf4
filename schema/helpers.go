package schema

import (
	"sort"
	"strings"
)

// SortedOwnerSet deduplicates and sorts an owner list so that renderings and
// JSON payloads are deterministic.
func SortedOwnerSet(owners []string) []string {
	seen := make(map[string]struct{}, len(owners))
	out := make([]string, 0, len(owners))
	for _, o := range owners {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// FormatOwners renders an owner set for table cells. Empty sets render as
// "unassigned" so the fallback decision stays visible to the caller.
func FormatOwners(owners []string) string {
	if len(owners) == 0 {
		return "unassigned"
	}
	return strings.Join(owners, ", ")
}
