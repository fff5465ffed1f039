package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/datetime"
)

// RunoutConfig holds the contract, rates and engines of a runout schedule.
type RunoutConfig struct {
	ContractStartDate  string          `yaml:"contractStartDate" mapstructure:"contractStartDate"`
	ContractEndDate    string          `yaml:"contractEndDate" mapstructure:"contractEndDate"`
	ValuationDate      string          `yaml:"valuationDate,omitempty" mapstructure:"valuationDate"`
	AUHours            float64         `yaml:"auHours" mapstructure:"auHours"`
	Rates              RatesConfig     `yaml:"rates" mapstructure:"rates"`
	Fees               FeesConfig      `yaml:"fees" mapstructure:"fees"`
	BuyIn              float64         `yaml:"buyIn,omitempty" mapstructure:"buyIn"`
	RateEscalation     float64         `yaml:"rateEscalation,omitempty" mapstructure:"rateEscalation"`
	RateTrend          []float64       `yaml:"rateTrend,omitempty" mapstructure:"rateTrend"`
	FlightHoursMinimum float64         `yaml:"flightHoursMinimum,omitempty" mapstructure:"flightHoursMinimum"`
	NumOfDaysInYear    float64         `yaml:"numOfDaysInYear,omitempty" mapstructure:"numOfDaysInYear"`
	NumOfDaysInMonth   float64         `yaml:"numOfDaysInMonth,omitempty" mapstructure:"numOfDaysInMonth"`
	EnrollmentFees     float64         `yaml:"enrollmentFees,omitempty" mapstructure:"enrollmentFees"`
	MinPeriodDays      *int            `yaml:"minPeriodDays,omitempty" mapstructure:"minPeriodDays"`
	Allocation         string          `yaml:"allocation,omitempty" mapstructure:"allocation"`
	Engines            []EngineConfig  `yaml:"engines" mapstructure:"engines"`
	GoalSeek           *GoalSeekConfig `yaml:"goalSeek,omitempty" mapstructure:"goalSeek"`

	contractStart time.Time
	contractEnd   time.Time
	valuation     time.Time
}

// RatesConfig holds the per-flight-hour tier rates. Unset tiers inherit the
// rate of the tier before them.
type RatesConfig struct {
	Warranty  float64 `yaml:"warranty" mapstructure:"warranty"`
	FirstRun  float64 `yaml:"firstRun,omitempty" mapstructure:"firstRun"`
	SecondRun float64 `yaml:"secondRun,omitempty" mapstructure:"secondRun"`
	ThirdRun  float64 `yaml:"thirdRun,omitempty" mapstructure:"thirdRun"`
}

// FeesConfig holds fee percentages.
type FeesConfig struct {
	Management float64 `yaml:"management" mapstructure:"management"`
	AIC        float64 `yaml:"aic" mapstructure:"aic"`
	TrustLoad  float64 `yaml:"trustLoad" mapstructure:"trustLoad"`
}

// EngineConfig holds one engine's rate-tier milestones.
type EngineConfig struct {
	ID                      string  `yaml:"id" mapstructure:"id"`
	WarrantyExpDate         string  `yaml:"warrantyExpDate" mapstructure:"warrantyExpDate"`
	WarrantyExpHours        float64 `yaml:"warrantyExpHours,omitempty" mapstructure:"warrantyExpHours"`
	FirstRunRateSwitchDate  string  `yaml:"firstRunRateSwitchDate" mapstructure:"firstRunRateSwitchDate"`
	SecondRunRateSwitchDate string  `yaml:"secondRunRateSwitchDate" mapstructure:"secondRunRateSwitchDate"`
	ThirdRunRateSwitchDate  string  `yaml:"thirdRunRateSwitchDate" mapstructure:"thirdRunRateSwitchDate"`

	warrantyExp time.Time
	firstRun    time.Time
	secondRun   time.Time
	thirdRun    time.Time
}

// Normalize applies defaults to the runout configuration.
func (r *RunoutConfig) Normalize() {
	if r == nil {
		return
	}
	if r.NumOfDaysInYear <= 0 {
		r.NumOfDaysInYear = constants.DefaultDaysInYear
	}
	if r.NumOfDaysInMonth <= 0 {
		r.NumOfDaysInMonth = constants.DefaultDaysInMonth
	}
	if r.MinPeriodDays == nil {
		minDays := constants.DefaultMinPeriodDays
		r.MinPeriodDays = &minDays
	}
	r.Allocation = strings.ToLower(strings.TrimSpace(r.Allocation))
	if r.Allocation == "" {
		r.Allocation = constants.AllocationOverlap
	}
	for i := range r.Engines {
		if strings.TrimSpace(r.Engines[i].ID) == "" {
			r.Engines[i].ID = fmt.Sprintf("engine%d", i+1)
		}
	}
	r.GoalSeek.Normalize()
}

// ParseDates parses the contract and engine dates.
func (r *RunoutConfig) ParseDates() error {
	var err error
	if r.contractStart, err = parseField("contractStartDate", r.ContractStartDate); err != nil {
		return err
	}
	if r.contractEnd, err = parseField("contractEndDate", r.ContractEndDate); err != nil {
		return err
	}
	r.valuation = time.Time{}
	if strings.TrimSpace(r.ValuationDate) != "" {
		if r.valuation, err = parseField("valuationDate", r.ValuationDate); err != nil {
			return err
		}
	}

	for i := range r.Engines {
		if err := r.Engines[i].parseDates(); err != nil {
			return fmt.Errorf("engine %d: %w", i+1, err)
		}
	}
	return nil
}

func (e *EngineConfig) parseDates() error {
	var err error
	if e.warrantyExp, err = parseField("warrantyExpDate", e.WarrantyExpDate); err != nil {
		return err
	}
	if e.firstRun, err = parseField("firstRunRateSwitchDate", e.FirstRunRateSwitchDate); err != nil {
		return err
	}
	if e.secondRun, err = parseField("secondRunRateSwitchDate", e.SecondRunRateSwitchDate); err != nil {
		return err
	}
	if e.thirdRun, err = parseField("thirdRunRateSwitchDate", e.ThirdRunRateSwitchDate); err != nil {
		return err
	}
	return nil
}

func parseField(name, value string) (time.Time, error) {
	t, err := datetime.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// warningDate renders a date for the lexical warning checks: the parsed value
// when there is one, otherwise the trimmed config string.
func warningDate(parsed time.Time, raw string) string {
	if !parsed.IsZero() {
		return datetime.Format(parsed)
	}
	return strings.TrimSpace(raw)
}

// parsed reports whether ParseDates has run successfully.
func (r *RunoutConfig) parsed() bool {
	return !r.contractStart.IsZero() && !r.contractEnd.IsZero()
}

// Validate checks the runout section once its dates are parsed.
func (r *RunoutConfig) Validate() error {
	if !r.parsed() {
		return fmt.Errorf("dates have not been parsed")
	}
	if err := r.Params().Validate(); err != nil {
		return err
	}
	if r.GoalSeek != nil {
		if err := r.GoalSeek.Validate(); err != nil {
			return err
		}
	}
	return nil
}
