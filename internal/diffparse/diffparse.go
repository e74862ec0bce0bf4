// Package diffparse converts unified diff text into changed-file statistics.
package diffparse

import (
	"fmt"
	"io"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/huangsam/prlens/schema"
)

// Parse reads a unified diff and returns per-file changed statistics in the
// order the diff reports them. Binary files are marked with zero line counts.
func Parse(r io.Reader) ([]schema.ChangedFile, error) {
	parsed, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	seen := make(map[string]struct{}, len(parsed))
	files := make([]schema.ChangedFile, 0, len(parsed))
	for _, f := range parsed {
		cf := schema.ChangedFile{
			Path:     displayName(f),
			IsBinary: f.IsBinary,
		}
		if !f.IsBinary {
			for _, frag := range f.TextFragments {
				for _, line := range frag.Lines {
					switch line.Op {
					case gitdiff.OpAdd:
						cf.LinesAdded++
					case gitdiff.OpDelete:
						cf.LinesRemoved++
					}
				}
			}
		}

		// A well-formed diff never repeats a path; keep the first entry if
		// a malformed one does.
		if _, dup := seen[cf.Path]; dup {
			continue
		}
		seen[cf.Path] = struct{}{}
		files = append(files, cf)
	}
	return files, nil
}

// displayName picks the post-change path for a file, falling back to the
// pre-change path for deletions.
func displayName(f *gitdiff.File) string {
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}
