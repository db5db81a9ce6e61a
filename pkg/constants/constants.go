// Package constants provides shared constants for the loan-portal application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions; all percentages
	// are stored as their numeric value, e.g. 20 means 20%.
	PercentageMultiplier = 100

	// CurrencyPlaces is the number of decimal places monetary values are
	// rounded to when a report is assembled.
	CurrencyPlaces = 2

	// PerMille is the denominator for rates quoted per thousand.
	PerMille = 1000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Report kinds accepted by the CLI and used as metric labels.
const (
	ReportPreApproval = "preapproval"
	ReportFHA         = "fha"
	ReportQuickQuote  = "quickquote"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "loanportal.yaml"

	// DefaultEnvFile is loaded before the configuration when present
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes environment overrides, e.g. LOANPORTAL_STORE_DRIVER.
	EnvPrefix = "LOANPORTAL"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (1 MB)
	DefaultMaxBodySizeBytes int64 = 1024 * 1024
)

// Store drivers
const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"

	// DefaultSQLitePath is the default database file for the sqlite driver
	DefaultSQLitePath = "loanportal.db"

	// DefaultRedisKeyPrefix namespaces all keys written by the redis driver
	DefaultRedisKeyPrefix = "loanportal"
)

// Validation constants
const (
	MinFicoScore = 300
	MaxFicoScore = 850
)
