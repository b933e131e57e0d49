// Package constants provides shared constants for the mortgage-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimals used when rounding currency
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Loan defaults and limits
const (
	// DefaultTermYears is the loan term used when none is given
	DefaultTermYears = 30

	// MaxTermYears is the longest accepted loan term
	MaxTermYears = 50

	// MaxInterestRate is the highest accepted annual rate in percent
	MaxInterestRate = 30.0

	// MaxLoanAmount is the sanity ceiling for the amount sought
	MaxLoanAmount = 100_000_000.0

	// AutoDownPaymentPercent is the down payment share derived in auto mode
	AutoDownPaymentPercent = 15.0

	// MaxYearlyMonths caps the months shown in the yearly series (200 years)
	MaxYearlyMonths = 2400

	// DefaultCurrency is the display symbol used when none is configured
	DefaultCurrency = "kr"
)

// Down payment modes
const (
	// DownPaymentAuto derives the down payment from the amount sought
	DownPaymentAuto = "auto"

	// DownPaymentManual takes the down payment as entered
	DownPaymentManual = "manual"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. MORTGAGE_CURRENCY
	EnvPrefix = "MORTGAGE"

	// DefaultExportDir is where PDF reports are written
	DefaultExportDir = "exports"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultCacheTTLSeconds is how long cached calculations are kept
	DefaultCacheTTLSeconds = 600

	// CacheKeyPrefix namespaces cached calculations
	CacheKeyPrefix = "mortgage:"
)
