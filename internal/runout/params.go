package runout

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/datetime"
)

// Rate parameter names accepted by WithRate.
const (
	ParamWarrantyRate  = "warrantyRate"
	ParamFirstRunRate  = "firstRunRate"
	ParamSecondRunRate = "secondRunRate"
	ParamThirdRunRate  = "thirdRunRate"
)

// Rates are the per-flight-hour rates of the four tiers.
type Rates struct {
	Warranty  float64 `json:"warranty" yaml:"warranty"`
	FirstRun  float64 `json:"firstRun" yaml:"firstRun"`
	SecondRun float64 `json:"secondRun" yaml:"secondRun"`
	ThirdRun  float64 `json:"thirdRun" yaml:"thirdRun"`
}

// Effective fills unset tiers from the tier before them.
func (r Rates) Effective() Rates {
	if r.FirstRun == 0 {
		r.FirstRun = r.Warranty
	}
	if r.SecondRun == 0 {
		r.SecondRun = r.FirstRun
	}
	if r.ThirdRun == 0 {
		r.ThirdRun = r.SecondRun
	}
	return r
}

// Fees are percentages taken out of flight-hour revenue.
type Fees struct {
	Management float64 `json:"management" yaml:"management"`
	AIC        float64 `json:"aic" yaml:"aic"`
	TrustLoad  float64 `json:"trustLoad" yaml:"trustLoad"`
}

// Engine holds the rate-tier milestones of one engine.
type Engine struct {
	ID                      string
	WarrantyExpDate         time.Time
	WarrantyExpHours        float64
	FirstRunRateSwitchDate  time.Time
	SecondRunRateSwitchDate time.Time
	ThirdRunRateSwitchDate  time.Time
}

// Params holds the inputs of a runout calculation.
type Params struct {
	ContractStartDate  time.Time
	ContractEndDate    time.Time
	ValuationDate      time.Time // zero means the whole contract
	AUHours            float64
	Rates              Rates
	Fees               Fees
	BuyIn              float64
	RateEscalation     float64
	RateTrend          []float64
	FlightHoursMinimum float64
	DaysInYear         float64
	DaysInMonth        float64
	EnrollmentFees     float64
	MinPeriodDays      int
	Allocation         string
	Engines            []Engine
}

// HoursPerDay is the daily utilization of one engine.
func (p Params) HoursPerDay() float64 {
	return p.AUHours / p.DaysInYear
}

// Validate returns an error for the first parameter outside its domain.
func (p Params) Validate() error {
	if p.ContractStartDate.IsZero() || p.ContractEndDate.IsZero() {
		return fmt.Errorf("contract start and end dates are required")
	}
	if p.ContractEndDate.Before(p.ContractStartDate) {
		return fmt.Errorf("contract end date %s is before start date %s",
			datetime.Format(p.ContractEndDate), datetime.Format(p.ContractStartDate))
	}
	if !p.ValuationDate.IsZero() && p.ValuationDate.After(p.ContractEndDate) {
		return fmt.Errorf("valuation date %s is after the contract end date", datetime.Format(p.ValuationDate))
	}
	if p.AUHours <= 0 {
		return fmt.Errorf("auHours must be positive")
	}
	if p.DaysInYear <= 0 {
		return fmt.Errorf("numOfDaysInYear must be positive")
	}
	if p.DaysInMonth <= 0 {
		return fmt.Errorf("numOfDaysInMonth must be positive")
	}
	if p.MinPeriodDays < 0 {
		return fmt.Errorf("minPeriodDays cannot be negative")
	}

	type named struct {
		name  string
		value float64
	}
	rates := []named{
		{ParamWarrantyRate, p.Rates.Warranty},
		{ParamFirstRunRate, p.Rates.FirstRun},
		{ParamSecondRunRate, p.Rates.SecondRun},
		{ParamThirdRunRate, p.Rates.ThirdRun},
	}
	for _, r := range rates {
		if r.value < 0 {
			return fmt.Errorf("%s cannot be negative", r.name)
		}
	}

	fees := []named{
		{"managementFees", p.Fees.Management},
		{"aicFees", p.Fees.AIC},
		{"trustLoadFees", p.Fees.TrustLoad},
	}
	for _, f := range fees {
		if f.value < 0 || f.value > constants.PercentageMultiplier {
			return fmt.Errorf("%s must be between 0 and 100", f.name)
		}
	}

	if p.BuyIn < 0 {
		return fmt.Errorf("buyIn cannot be negative")
	}
	if p.RateEscalation < 0 {
		return fmt.Errorf("rateEscalation cannot be negative")
	}
	for i, v := range p.RateTrend {
		if v <= 0 {
			return fmt.Errorf("rateTrend[%d] must be positive", i)
		}
	}
	if p.FlightHoursMinimum < 0 {
		return fmt.Errorf("flightHoursMinimum cannot be negative")
	}
	if p.EnrollmentFees < 0 {
		return fmt.Errorf("enrollmentFees cannot be negative")
	}
	if _, err := NewAllocator(p.Allocation); err != nil {
		return err
	}

	if len(p.Engines) == 0 {
		return fmt.Errorf("at least one engine is required")
	}
	for i, e := range p.Engines {
		if err := e.validate(p.ContractStartDate); err != nil {
			return fmt.Errorf("engine %d (%s): %w", i+1, e.ID, err)
		}
	}

	return nil
}

func (e Engine) validate(contractStart time.Time) error {
	if e.WarrantyExpDate.IsZero() || e.FirstRunRateSwitchDate.IsZero() ||
		e.SecondRunRateSwitchDate.IsZero() || e.ThirdRunRateSwitchDate.IsZero() {
		return fmt.Errorf("all milestone dates are required")
	}
	if e.WarrantyExpHours < 0 {
		return fmt.Errorf("warrantyExpHours cannot be negative")
	}
	if e.WarrantyExpDate.Before(contractStart) {
		return fmt.Errorf("warrantyExpDate %s is before the contract start", datetime.Format(e.WarrantyExpDate))
	}
	if e.FirstRunRateSwitchDate.Before(e.WarrantyExpDate) {
		return fmt.Errorf("firstRunRateSwitchDate is before warrantyExpDate")
	}
	if e.SecondRunRateSwitchDate.Before(e.FirstRunRateSwitchDate) {
		return fmt.Errorf("secondRunRateSwitchDate is before firstRunRateSwitchDate")
	}
	if e.ThirdRunRateSwitchDate.Before(e.SecondRunRateSwitchDate) {
		return fmt.Errorf("thirdRunRateSwitchDate is before secondRunRateSwitchDate")
	}
	return nil
}

// WithRate returns a copy of p with the named tier rate replaced.
func (p Params) WithRate(name string, value float64) (Params, error) {
	switch name {
	case ParamWarrantyRate:
		p.Rates.Warranty = value
	case ParamFirstRunRate:
		p.Rates.FirstRun = value
	case ParamSecondRunRate:
		p.Rates.SecondRun = value
	case ParamThirdRunRate:
		p.Rates.ThirdRun = value
	default:
		return p, fmt.Errorf("unknown rate parameter %q", name)
	}
	return p, nil
}

// Rate returns the configured value of the named tier rate.
func (p Params) Rate(name string) (float64, error) {
	switch name {
	case ParamWarrantyRate:
		return p.Rates.Warranty, nil
	case ParamFirstRunRate:
		return p.Rates.FirstRun, nil
	case ParamSecondRunRate:
		return p.Rates.SecondRun, nil
	case ParamThirdRunRate:
		return p.Rates.ThirdRun, nil
	}
	return 0, fmt.Errorf("unknown rate parameter %q", name)
}

// milestones resolves an engine's tier boundaries, pulling the warranty
// expiration earlier when its hour limit is reached first. Hours are
// converted to whole days of utilization counted from anchor.
func (p Params) milestones(e Engine, anchor time.Time) Milestones {
	m := Milestones{
		WarrantyExp: datetime.Normalize(e.WarrantyExpDate),
		FirstRun:    datetime.Normalize(e.FirstRunRateSwitchDate),
		SecondRun:   datetime.Normalize(e.SecondRunRateSwitchDate),
		ThirdRun:    datetime.Normalize(e.ThirdRunRateSwitchDate),
	}
	if e.WarrantyExpHours > 0 {
		// Compare in float so hour limits beyond the int range never wrap.
		days := math.Floor(e.WarrantyExpHours / p.HoursPerDay())
		if days < float64(datetime.DaysBetween(anchor, m.WarrantyExp)) {
			m.WarrantyExp = datetime.AddDays(anchor, int(days))
		}
	}
	return m
}
