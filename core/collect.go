package core

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/internal/diffparse"
	"github.com/huangsam/prlens/schema"
)

// Collect gathers per-file change statistics for the configured changeset.
// Two sources are supported: a base..target ref pair resolved through the
// git client, or a pre-computed unified diff file ("-" reads stdin).
// Any resolution failure surfaces as a NotFoundError.
func Collect(ctx context.Context, cfg *contract.Config, client contract.GitClient) (schema.ChangeSet, error) {
	if err := contract.ValidateChangesetRef(cfg); err != nil {
		return schema.ChangeSet{}, err
	}

	if cfg.DiffFile != "" {
		return collectFromDiffFile(cfg.DiffFile)
	}
	return collectFromRefs(ctx, cfg, client)
}

// collectFromRefs resolves the ref pair via `git diff --numstat`.
func collectFromRefs(ctx context.Context, cfg *contract.Config, client contract.GitClient) (schema.ChangeSet, error) {
	refPair := cfg.BaseRef + ".." + cfg.TargetRef

	out, err := client.DiffNumstat(ctx, cfg.RepoPath, cfg.BaseRef, cfg.TargetRef)
	if err != nil {
		return schema.ChangeSet{}, &contract.NotFoundError{Ref: refPair, Err: err}
	}

	files, err := parseNumstat(string(out))
	if err != nil {
		return schema.ChangeSet{}, &contract.NotFoundError{Ref: refPair, Err: err}
	}

	return schema.ChangeSet{
		BaseRef:   cfg.BaseRef,
		TargetRef: cfg.TargetRef,
		Files:     files,
	}, nil
}

// collectFromDiffFile parses a unified diff supplied by the caller.
func collectFromDiffFile(path string) (schema.ChangeSet, error) {
	var files []schema.ChangedFile
	var err error

	if path == "-" {
		files, err = diffparse.Parse(os.Stdin)
	} else {
		f, openErr := os.Open(path)
		if openErr != nil {
			return schema.ChangeSet{}, &contract.NotFoundError{Ref: path, Err: openErr}
		}
		defer func() { _ = f.Close() }()
		files, err = diffparse.Parse(f)
	}
	if err != nil {
		return schema.ChangeSet{}, &contract.NotFoundError{Ref: path, Err: err}
	}

	return schema.ChangeSet{Files: files}, nil
}

// parseNumstat converts `git diff --numstat` output into ChangedFile records.
// Each line looks like "added<TAB>removed<TAB>path"; binary files report "-"
// for both counts. Rename lines use "old => new" or "prefix/{old => new}/rest".
func parseNumstat(out string) ([]schema.ChangedFile, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	seen := make(map[string]struct{}, len(lines))
	files := make([]schema.ChangedFile, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}

		cf := schema.ChangedFile{Path: resolveRenamePath(parts[2])}
		if parts[0] == "-" || parts[1] == "-" {
			cf.IsBinary = true
		} else {
			added, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, err
			}
			removed, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, err
			}
			cf.LinesAdded = added
			cf.LinesRemoved = removed
		}

		// The numstat output never repeats a path, but a merge diff can;
		// keep the first occurrence so the changeset invariant holds.
		if _, dup := seen[cf.Path]; dup {
			continue
		}
		seen[cf.Path] = struct{}{}
		files = append(files, cf)
	}
	return files, nil
}

// resolveRenamePath collapses Git rename notation to the post-rename path.
// "src/{old => new}/a.go" becomes "src/new/a.go" and "a.go => b.go"
// becomes "b.go".
func resolveRenamePath(path string) string {
	if open := strings.Index(path, "{"); open != -1 {
		if end := strings.Index(path[open:], "}"); end != -1 {
			inner := path[open+1 : open+end]
			if arrow := strings.Index(inner, " => "); arrow != -1 {
				replaced := path[:open] + inner[arrow+4:] + path[open+end+1:]
				return strings.ReplaceAll(replaced, "//", "/")
			}
		}
	}
	if arrow := strings.Index(path, " => "); arrow != -1 {
		return path[arrow+4:]
	}
	return path
}
