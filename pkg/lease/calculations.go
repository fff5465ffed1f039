// Package lease provides the engine-lease revenue and maintenance cost
// projection.
package lease

import (
	"fmt"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Params holds the inputs of a lease projection.
type Params struct {
	NumYears       int     `json:"numYears" yaml:"numYears"`
	AUHours        float64 `json:"auHours" yaml:"auHours"`
	InitialTSN     float64 `json:"initialTSN" yaml:"initialTSN"`
	RateEscalation float64 `json:"rateEscalation" yaml:"rateEscalation"` // percent per year
	AIC            float64 `json:"aic" yaml:"aic"`                       // percent of engine revenue
	HSITSN         float64 `json:"hsiTSN" yaml:"hsiTSN"`
	OverhaulTSN    float64 `json:"overhaulTSN" yaml:"overhaulTSN"`
	HSICost        float64 `json:"hsiCost" yaml:"hsiCost"`
	OverhaulCost   float64 `json:"overhaulCost" yaml:"overhaulCost"`
}

// YearRow holds the values for one projected lease year.
type YearRow struct {
	Year             int     `json:"year" yaml:"year"`
	TSN              float64 `json:"tsn" yaml:"tsn"`
	EscalatedRate    float64 `json:"escalatedRate" yaml:"escalatedRate"`
	EngineRevenue    float64 `json:"engineRevenue" yaml:"engineRevenue"`
	AICRevenue       float64 `json:"aicRevenue" yaml:"aicRevenue"`
	TotalRevenue     float64 `json:"totalRevenue" yaml:"totalRevenue"`
	HSI              bool    `json:"hsi" yaml:"hsi"`
	Overhaul         bool    `json:"overhaul" yaml:"overhaul"`
	TotalCost        float64 `json:"totalCost" yaml:"totalCost"`
	TotalProfit      float64 `json:"totalProfit" yaml:"totalProfit"`
	CumulativeProfit float64 `json:"cumulativeProfit" yaml:"cumulativeProfit"`
}

// DefaultParams returns the reference ten-year projection inputs.
func DefaultParams() Params {
	return Params{
		NumYears:       constants.DefaultNumYears,
		AUHours:        constants.DefaultAUHours,
		InitialTSN:     constants.DefaultInitialTSN,
		RateEscalation: constants.DefaultRateEscalation,
		AIC:            constants.DefaultAIC,
		HSITSN:         constants.DefaultHSITSN,
		OverhaulTSN:    constants.DefaultOverhaulTSN,
		HSICost:        constants.DefaultHSICost,
		OverhaulCost:   constants.DefaultOverhaulCost,
	}
}

// Validate returns an error for the first parameter outside its domain.
func (p Params) Validate() error {
	if p.NumYears <= 0 {
		return fmt.Errorf("numYears must be positive")
	}
	if p.AUHours <= 0 {
		return fmt.Errorf("auHours must be positive")
	}
	if p.InitialTSN < 0 {
		return fmt.Errorf("initialTSN cannot be negative")
	}
	if p.RateEscalation < 0 {
		return fmt.Errorf("rateEscalation cannot be negative")
	}
	if p.AIC < 0 || p.AIC > 100 {
		return fmt.Errorf("aic must be between 0 and 100")
	}
	if p.HSITSN <= 0 {
		return fmt.Errorf("hsiTSN must be positive")
	}
	if p.OverhaulTSN <= 0 {
		return fmt.Errorf("overhaulTSN must be positive")
	}
	if p.HSICost < 0 {
		return fmt.Errorf("hsiCost cannot be negative")
	}
	if p.OverhaulCost < 0 {
		return fmt.Errorf("overhaulCost cannot be negative")
	}
	return nil
}

// crossesThreshold reports whether usage reaches threshold during the given
// year. The first year triggers whenever its TSN is already past it.
func crossesThreshold(year int, tsn, auHours, threshold float64) bool {
	if tsn < threshold {
		return false
	}
	return year == 1 || tsn-auHours < threshold
}

// CalculateFinancials returns the cumulative profit at the end of the
// projection for the given base rate.
func CalculateFinancials(rate float64, params Params) (float64, error) {
	var cumulativeProfit float64
	escalation := 1 + params.RateEscalation/constants.PercentageMultiplier
	factor := 1.0

	for year := 1; year <= params.NumYears; year++ {
		tsn := params.InitialTSN + params.AUHours*float64(year)
		engineRevenue := params.AUHours * rate * factor
		totalRevenue := engineRevenue + mathutil.ApplyPercentage(engineRevenue, params.AIC)

		totalCost := 0.0
		if crossesThreshold(year, tsn, params.AUHours, params.HSITSN) {
			totalCost += params.HSICost
		}
		if crossesThreshold(year, tsn, params.AUHours, params.OverhaulTSN) {
			totalCost += params.OverhaulCost
		}

		cumulativeProfit += totalRevenue - totalCost
		if !mathutil.IsFinite(cumulativeProfit) {
			return 0, fmt.Errorf("cumulative profit overflowed in year %d at rate %v", year, rate)
		}
		factor *= escalation
	}

	return cumulativeProfit, nil
}

// ScheduleGenerator builds detailed year-by-year lease projections.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule builds the projection table for the given base rate. Its
// final cumulative profit equals CalculateFinancials for the same inputs.
func (g *ScheduleGenerator) GenerateSchedule(rate float64, params Params) ([]YearRow, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rate < 0 || !mathutil.IsFinite(rate) {
		return nil, fmt.Errorf("rate must be a non-negative number, got %v", rate)
	}

	rows := make([]YearRow, 0, params.NumYears)
	escalation := 1 + params.RateEscalation/constants.PercentageMultiplier
	factor := 1.0
	cumulative := 0.0

	for year := 1; year <= params.NumYears; year++ {
		row := YearRow{Year: year}
		row.TSN = params.InitialTSN + params.AUHours*float64(year)
		row.EscalatedRate = rate * factor
		row.EngineRevenue = params.AUHours * row.EscalatedRate
		row.AICRevenue = mathutil.ApplyPercentage(row.EngineRevenue, params.AIC)
		row.TotalRevenue = row.EngineRevenue + row.AICRevenue

		row.HSI = crossesThreshold(year, row.TSN, params.AUHours, params.HSITSN)
		if row.HSI {
			g.logger.Debug(fmt.Sprintf("year %d: HSI due at TSN %.0f", year, row.TSN),
				zap.String("op", "lease.GenerateSchedule"),
			)
			row.TotalCost += params.HSICost
		}
		row.Overhaul = crossesThreshold(year, row.TSN, params.AUHours, params.OverhaulTSN)
		if row.Overhaul {
			g.logger.Debug(fmt.Sprintf("year %d: overhaul due at TSN %.0f", year, row.TSN),
				zap.String("op", "lease.GenerateSchedule"),
			)
			row.TotalCost += params.OverhaulCost
		}

		row.TotalProfit = row.TotalRevenue - row.TotalCost
		cumulative += row.TotalProfit
		row.CumulativeProfit = cumulative
		rows = append(rows, row)
		factor *= escalation
	}

	return rows, nil
}

// BuildSchedule builds the projection table without debug logging.
func BuildSchedule(rate float64, params Params) ([]YearRow, error) {
	return NewScheduleGenerator(nil).GenerateSchedule(rate, params)
}
