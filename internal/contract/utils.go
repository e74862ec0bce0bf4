package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/prlens/schema"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor represents standard danger.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns the plain text label for a tier. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(tier schema.Tier) string {
	return string(tier)
}

// GetColorLabel returns a colored tier label for console output (table).
func GetColorLabel(tier schema.Tier) string {
	text := GetPlainLabel(tier)

	switch tier {
	case schema.HighTier:
		return HighColor.Sprint(text)
	case schema.MediumTier:
		return MediumColor.Sprint(text)
	default: // LOW
		return LowColor.Sprint(text)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".prlens_history.db"
	}
	return filepath.Join(homeDir, ".prlens_history.db")
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// MatchPathPattern reports whether a path matches a risky-path pattern.
// It supports glob patterns (via filepath.Match) when the pattern contains
// wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated as
// directory matches anywhere in the path. Patterns starting with '.' are
// treated as suffix (extension) matches. Anything else is a substring match.
// A user can provide patterns like "auth/", "payments/", "*.sql".
func MatchPathPattern(path, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}

	// If the pattern contains glob characters, try filepath.Match.
	if strings.ContainsAny(pattern, "*?[") || strings.Contains(pattern, "**") {
		pat := strings.ReplaceAll(pattern, "**", "*")
		if ok, err := filepath.Match(pat, path); err == nil && ok {
			return true
		}
		// Also try matching against the base filename (e.g. *.sql)
		if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
			return true
		}
		return false
	}

	// Handle prefix, suffix, or directory-segment matches
	switch {
	case strings.HasSuffix(pattern, "/"):
		return strings.HasPrefix(path, pattern) || strings.Contains(path, "/"+pattern)
	case strings.HasPrefix(pattern, "."):
		return strings.HasSuffix(path, pattern)
	default:
		return strings.Contains(path, pattern)
	}
}

// sortOwnerRules orders rules by prefix so matching is deterministic.
func sortOwnerRules(rules []schema.OwnerRule) {
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Prefix < rules[j].Prefix
	})
}
