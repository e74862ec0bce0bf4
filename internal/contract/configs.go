package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/prlens/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultTargetRef = "HEAD"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath  string
	BaseRef   string
	TargetRef string
	DiffFile  string // Pre-computed unified diff path ("-" reads stdin)

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	FileCountWeight float64
	LineCountWeight float64
	MaxLinesPerFile int
	LargeFileCount  int
	LargeLineCount  int
	RiskyPatterns   []schema.RiskyPattern
	Thresholds      schema.TierThresholds

	// Owners is sorted by prefix so longest-prefix ties resolve lexically.
	Owners []schema.OwnerRule

	// FailTier is the tier at which `prlens check` fails the build.
	FailTier schema.Tier

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.RiskyPatterns != nil {
		clone.RiskyPatterns = make([]schema.RiskyPattern, len(c.RiskyPatterns))
		copy(clone.RiskyPatterns, c.RiskyPatterns)
	}
	if c.Owners != nil {
		clone.Owners = make([]schema.OwnerRule, len(c.Owners))
		for i, rule := range c.Owners {
			owners := make([]string, len(rule.Owners))
			copy(owners, rule.Owners)
			clone.Owners[i] = schema.OwnerRule{Prefix: rule.Prefix, Owners: owners}
		}
	}
	return &clone
}

// WeightsRawInput holds the scoring weight overrides from the YAML config file.
// Use float64 pointers so absent keys fall back to defaults.
type WeightsRawInput struct {
	FileCount      *float64 `mapstructure:"file_count"`
	LineCount      *float64 `mapstructure:"line_count"`
	LargeFileCount *int     `mapstructure:"large_file_count"`
	LargeLineCount *int     `mapstructure:"large_line_count"`
}

// RiskyPathRawInput is one risky-path entry from the YAML config file.
type RiskyPathRawInput struct {
	Pattern string   `mapstructure:"pattern"`
	Weight  *float64 `mapstructure:"weight"`
}

// ThresholdsRawInput holds tier threshold overrides from the YAML config file.
type ThresholdsRawInput struct {
	Medium *float64 `mapstructure:"medium"`
	High   *float64 `mapstructure:"high"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	BaseRef          string `mapstructure:"base-ref"`
	TargetRef        string `mapstructure:"target-ref"`
	DiffFile         string `mapstructure:"diff-file"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	MaxLinesPerFile  int    `mapstructure:"max-lines-per-file"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from checkCmd.Flags() ---
	FailTier string `mapstructure:"fail-tier"`

	// --- Structured sections from the config file ---
	Weights    WeightsRawInput      `mapstructure:"weights"`
	RiskyPaths *[]RiskyPathRawInput `mapstructure:"risky_paths"`
	Thresholds ThresholdsRawInput   `mapstructure:"thresholds"`
	Owners     map[string][]string  `mapstructure:"owners"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every configuration problem surfaces
// as a ConfigError before any changeset is processed.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processRiskyPatterns(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processOwners(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateChangesetRef checks that the config names a resolvable changeset
// input. Commands that run the pipeline call this; management commands skip it.
func ValidateChangesetRef(cfg *Config) error {
	if cfg.DiffFile == "" && cfg.BaseRef == "" {
		return &ConfigError{Key: "base-ref", Reason: "required unless --diff-file is provided"}
	}
	if cfg.DiffFile != "" && cfg.BaseRef != "" {
		return &ConfigError{Key: "diff-file", Reason: "cannot be combined with --base-ref"}
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return &ConfigError{Key: "history-db-connect", Reason: fmt.Sprintf("required when using %s backend", backend)}
		}
		if !strings.Contains(connStr, "@tcp(") {
			return &ConfigError{Key: "history-db-connect", Reason: "MySQL connection string must contain '@tcp(' for host:port specification"}
		}
		if !strings.Contains(connStr, "/") {
			return &ConfigError{Key: "history-db-connect", Reason: "MySQL connection string must contain '/' followed by database name"}
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return &ConfigError{Key: "history-db-connect", Reason: fmt.Sprintf("required when using %s backend", backend)}
		}
		if !strings.Contains(connStr, "host=") {
			return &ConfigError{Key: "history-db-connect", Reason: "PostgreSQL connection string must contain 'host=' parameter"}
		}
		if !strings.Contains(connStr, "dbname=") {
			return &ConfigError{Key: "history-db-connect", Reason: "PostgreSQL connection string must contain 'dbname=' parameter"}
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-structured fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseRef = strings.TrimSpace(input.BaseRef)
	cfg.TargetRef = strings.TrimSpace(input.TargetRef)
	if cfg.TargetRef == "" {
		cfg.TargetRef = DefaultTargetRef
	}
	cfg.DiffFile = strings.TrimSpace(input.DiffFile)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return &ConfigError{Key: "color", Reason: err.Error()}
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return &ConfigError{Key: "precision", Reason: fmt.Sprintf("must be 1 or 2 (received %d)", input.Precision)}
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return &ConfigError{Key: "output", Reason: fmt.Sprintf("invalid format %q. must be text, csv, json", input.Output)}
	}

	if input.MaxLinesPerFile <= 0 {
		return &ConfigError{Key: "max-lines-per-file", Reason: fmt.Sprintf("must be greater than 0 (received %d)", input.MaxLinesPerFile)}
	}
	cfg.MaxLinesPerFile = input.MaxLinesPerFile

	cfg.FailTier = schema.Tier(strings.ToUpper(strings.TrimSpace(input.FailTier)))
	if cfg.FailTier == "" {
		cfg.FailTier = schema.HighTier
	}
	if _, ok := schema.ValidTiers[cfg.FailTier]; !ok {
		return &ConfigError{Key: "fail-tier", Reason: fmt.Sprintf("invalid tier %q. must be low, medium, high", input.FailTier)}
	}

	return nil
}

// processWeights applies weight overrides and rejects negative values.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	cfg.FileCountWeight = schema.DefaultFileCountWeight
	cfg.LineCountWeight = schema.DefaultLineCountWeight
	cfg.LargeFileCount = schema.DefaultLargeFileCount
	cfg.LargeLineCount = schema.DefaultLargeLineCount

	if input.Weights.FileCount != nil {
		cfg.FileCountWeight = *input.Weights.FileCount
	}
	if input.Weights.LineCount != nil {
		cfg.LineCountWeight = *input.Weights.LineCount
	}
	if input.Weights.LargeFileCount != nil {
		cfg.LargeFileCount = *input.Weights.LargeFileCount
	}
	if input.Weights.LargeLineCount != nil {
		cfg.LargeLineCount = *input.Weights.LargeLineCount
	}

	if cfg.FileCountWeight < 0 {
		return &ConfigError{Key: "weights.file_count", Reason: fmt.Sprintf("must not be negative (received %.3f)", cfg.FileCountWeight)}
	}
	if cfg.LineCountWeight < 0 {
		return &ConfigError{Key: "weights.line_count", Reason: fmt.Sprintf("must not be negative (received %.3f)", cfg.LineCountWeight)}
	}
	if cfg.LargeFileCount < 1 {
		return &ConfigError{Key: "weights.large_file_count", Reason: fmt.Sprintf("must be at least 1 (received %d)", cfg.LargeFileCount)}
	}
	if cfg.LargeLineCount < 1 {
		return &ConfigError{Key: "weights.large_line_count", Reason: fmt.Sprintf("must be at least 1 (received %d)", cfg.LargeLineCount)}
	}
	return nil
}

// processRiskyPatterns builds the risky pattern list. A present-but-empty
// risky_paths key clears the defaults; an absent key keeps them.
func processRiskyPatterns(cfg *Config, input *ConfigRawInput) error {
	if input.RiskyPaths == nil {
		cfg.RiskyPatterns = make([]schema.RiskyPattern, len(schema.DefaultRiskyPatterns))
		copy(cfg.RiskyPatterns, schema.DefaultRiskyPatterns)
		return nil
	}

	cfg.RiskyPatterns = make([]schema.RiskyPattern, 0, len(*input.RiskyPaths))
	for i, raw := range *input.RiskyPaths {
		pattern := strings.TrimSpace(raw.Pattern)
		if pattern == "" {
			return &ConfigError{Key: fmt.Sprintf("risky_paths[%d].pattern", i), Reason: "must not be empty"}
		}
		weight := 2.0
		if raw.Weight != nil {
			weight = *raw.Weight
		}
		if weight < 0 {
			return &ConfigError{Key: fmt.Sprintf("risky_paths[%d].weight", i), Reason: fmt.Sprintf("must not be negative (received %.3f)", weight)}
		}
		cfg.RiskyPatterns = append(cfg.RiskyPatterns, schema.RiskyPattern{Pattern: pattern, Weight: weight})
	}
	return nil
}

// processThresholds applies tier cut points and enforces monotonicity.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.Thresholds = schema.TierThresholds{
		Medium: schema.DefaultMediumThreshold,
		High:   schema.DefaultHighThreshold,
	}
	if input.Thresholds.Medium != nil {
		cfg.Thresholds.Medium = *input.Thresholds.Medium
	}
	if input.Thresholds.High != nil {
		cfg.Thresholds.High = *input.Thresholds.High
	}

	if cfg.Thresholds.Medium < 0 {
		return &ConfigError{Key: "thresholds.medium", Reason: fmt.Sprintf("must not be negative (received %.2f)", cfg.Thresholds.Medium)}
	}
	if cfg.Thresholds.Medium >= cfg.Thresholds.High {
		return &ConfigError{
			Key:    "thresholds",
			Reason: fmt.Sprintf("medium (%.2f) must be less than high (%.2f)", cfg.Thresholds.Medium, cfg.Thresholds.High),
		}
	}
	return nil
}

// processOwners converts the prefix → owners mapping into sorted rules.
// Sorting by prefix makes longest-prefix ties deterministic (lexical order).
func processOwners(cfg *Config, input *ConfigRawInput) error {
	cfg.Owners = make([]schema.OwnerRule, 0, len(input.Owners))
	for prefix, owners := range input.Owners {
		trimmed := strings.TrimSpace(prefix)
		if trimmed == "" {
			return &ConfigError{Key: "owners", Reason: "prefix must not be empty"}
		}
		cleaned := schema.SortedOwnerSet(owners)
		if len(cleaned) == 0 {
			return &ConfigError{Key: "owners." + trimmed, Reason: "must list at least one owner"}
		}
		cfg.Owners = append(cfg.Owners, schema.OwnerRule{Prefix: trimmed, Owners: cleaned})
	}
	sortOwnerRules(cfg.Owners)
	return nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return &ConfigError{Key: "history-backend", Reason: fmt.Sprintf("invalid backend %q. must be sqlite, mysql, postgresql, none", input.HistoryBackend)}
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// resolveRepoPath resolves the Git repository root for the run. When the
// changeset comes from a pre-computed diff file, no repository is needed.
func resolveRepoPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	if cfg.DiffFile != "" {
		cfg.RepoPath = absSearchPath
		return nil
	}

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	return nil
}
