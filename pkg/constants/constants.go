// Package constants provides shared constants for the lease-forecast application.
package constants

// DateLayout is the format expected for dates in config files and is also the
// output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultDaysInYear converts annual utilization into daily utilization.
	DefaultDaysInYear = 365.0

	// DefaultDaysInMonth is carried for monthly conversions.
	DefaultDaysInMonth = 30.0

	// DefaultMinPeriodDays drops stub contract years shorter than this.
	DefaultMinPeriodDays = 300

	// MidMonthCutoffDay is the last start day that anchors a contract year to
	// the month preceding its anniversary.
	MidMonthCutoffDay = 14
)

// Lease projection defaults
const (
	DefaultNumYears       = 10
	DefaultAUHours        = 450.0
	DefaultInitialTSN     = 100.0
	DefaultRateEscalation = 5.0
	DefaultAIC            = 10.0
	DefaultHSITSN         = 1000.0
	DefaultOverhaulTSN    = 3000.0
	DefaultHSICost        = 50000.0
	DefaultOverhaulCost   = 100000.0
	DefaultRate           = 320.0
)

// Goal seek defaults
const (
	// DefaultTolerance is the convergence tolerance for root finding.
	DefaultTolerance = 1e-8

	// DefaultMaxIterations bounds every root finder.
	DefaultMaxIterations = 100

	// DefaultSecantStepFactor sets the second secant point relative to the first.
	DefaultSecantStepFactor = 1.1

	// DefaultLowerBound and DefaultUpperBound bracket the bracketed method.
	DefaultLowerBound = 1.0
	DefaultUpperBound = 1000.0

	// DerivativeStep is the forward-difference step for Newton-Raphson.
	DerivativeStep = 1e-6
)

// Goal seek method names
const (
	MethodSecant = "secant"
	MethodBrent  = "brent"
	MethodNewton = "newton"
)

// Day-count allocation strategies
const (
	AllocationOverlap    = "overlap"
	AllocationCumulative = "cumulative"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultRunoutCSVFile is where the runout schedule is exported.
	DefaultRunoutCSVFile = "runout_results.csv"
)
