package config

import (
	"github.com/iwvelando/lease-forecast/internal/goalseek"
	"github.com/iwvelando/lease-forecast/internal/runout"
	"github.com/iwvelando/lease-forecast/pkg/constants"
)

// Params converts the runout section into calculator inputs. ParseDates must
// have been called first.
func (r *RunoutConfig) Params() runout.Params {
	p := runout.Params{
		ContractStartDate: r.contractStart,
		ContractEndDate:   r.contractEnd,
		ValuationDate:     r.valuation,
		AUHours:           r.AUHours,
		Rates: runout.Rates{
			Warranty:  r.Rates.Warranty,
			FirstRun:  r.Rates.FirstRun,
			SecondRun: r.Rates.SecondRun,
			ThirdRun:  r.Rates.ThirdRun,
		},
		Fees: runout.Fees{
			Management: r.Fees.Management,
			AIC:        r.Fees.AIC,
			TrustLoad:  r.Fees.TrustLoad,
		},
		BuyIn:              r.BuyIn,
		RateEscalation:     r.RateEscalation,
		RateTrend:          append([]float64(nil), r.RateTrend...),
		FlightHoursMinimum: r.FlightHoursMinimum,
		DaysInYear:         r.NumOfDaysInYear,
		DaysInMonth:        r.NumOfDaysInMonth,
		EnrollmentFees:     r.EnrollmentFees,
		MinPeriodDays:      constants.DefaultMinPeriodDays,
		Allocation:         r.Allocation,
	}
	if r.MinPeriodDays != nil {
		p.MinPeriodDays = *r.MinPeriodDays
	}

	p.Engines = make([]runout.Engine, 0, len(r.Engines))
	for _, e := range r.Engines {
		p.Engines = append(p.Engines, runout.Engine{
			ID:                      e.ID,
			WarrantyExpDate:         e.warrantyExp,
			WarrantyExpHours:        e.WarrantyExpHours,
			FirstRunRateSwitchDate:  e.firstRun,
			SecondRunRateSwitchDate: e.secondRun,
			ThirdRunRateSwitchDate:  e.thirdRun,
		})
	}
	return p
}

// GoalSeekSettings returns the scenario's goal seek settings, starting the
// search from the scenario rate unless an initial guess is configured.
func (s Scenario) GoalSeekSettings() (goalseek.Settings, bool) {
	if s.GoalSeek == nil {
		return goalseek.Settings{}, false
	}
	settings := s.GoalSeek.Settings(s.Name)
	if settings.InitialGuess <= 0 {
		settings.InitialGuess = s.LeaseRate()
	}
	return settings, true
}

// GoalSeekSettings returns the runout goal seek settings, if any.
func (r *RunoutConfig) GoalSeekSettings() (goalseek.Settings, bool) {
	if r == nil || r.GoalSeek == nil {
		return goalseek.Settings{}, false
	}
	return r.GoalSeek.Settings("runout"), true
}

// ContractYears returns the number of contract years the runout will span
// after the minimum length filter. ParseDates must have been called first.
func (r *RunoutConfig) ContractYears() int {
	if !r.parsed() {
		return 0
	}
	p := r.Params()
	return len(runout.Partition(p.ContractStartDate, p.ContractEndDate, p.MinPeriodDays))
}
