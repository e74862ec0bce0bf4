package schema

// Custom string types for type safety.
type (
	// Tier represents the coarse complexity bucket for a score.
	Tier string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for history tracking.
	DatabaseBackend string
)

// All tiers supported, from least to most complex.
const (
	LowTier    Tier = "LOW"
	MediumTier Tier = "MEDIUM"
	HighTier   Tier = "HIGH"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllTiers returns all tiers in ascending order of complexity.
var AllTiers = []Tier{LowTier, MediumTier, HighTier}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidTiers lists all valid tiers.
var ValidTiers = map[Tier]struct{}{
	LowTier:    {},
	MediumTier: {},
	HighTier:   {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// tierRank orders tiers for threshold comparisons.
var tierRank = map[Tier]int{
	LowTier:    0,
	MediumTier: 1,
	HighTier:   2,
}

// TierAtLeast reports whether tier t is at or above the reference tier.
func TierAtLeast(t, reference Tier) bool {
	return tierRank[t] >= tierRank[reference]
}

// TierFor buckets a numeric score into a tier using the given thresholds.
func TierFor(value float64, thresholds TierThresholds) Tier {
	switch {
	case value >= thresholds.High:
		return HighTier
	case value >= thresholds.Medium:
		return MediumTier
	default:
		return LowTier
	}
}

// Default weighting policy. These are a reasonable starting policy, not a
// discovered contract; all of them can be overridden in .prlens.yaml.
const (
	DefaultFileCountWeight = 1.0
	DefaultLineCountWeight = 0.5
	DefaultMediumThreshold = 50.0
	DefaultHighThreshold   = 200.0
	DefaultMaxLinesPerFile = 400
	DefaultLargeFileCount  = 20
	DefaultLargeLineCount  = 500
)

// DefaultRiskyPatterns flags paths that historically warrant extra review
// weight. Users extend or replace this list via the risky_paths config key.
var DefaultRiskyPatterns = []RiskyPattern{
	{Pattern: "auth/", Weight: 2.0},
	{Pattern: "payments/", Weight: 2.0},
	{Pattern: "security/", Weight: 2.0},
	{Pattern: "migrations/", Weight: 1.5},
}
