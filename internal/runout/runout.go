// Package runout computes the contract-year amortization schedule of an
// engine maintenance contract: flight-hour revenue per rate tier, fees and
// trust distributions for every remaining contract year.
package runout

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/lease-forecast/pkg/datetime"
	"github.com/iwvelando/lease-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// KPI names accepted by Result.KPI.
const (
	KPICumulativeTotalRevenue = "cumulativeTotalRevenue"
	KPICumulativeTrustRevenue = "cumulativeTrustRevenue"
	KPITotalFHRevenue         = "totalFHRevenue"
)

// ErrNoPeriods is returned when no contract year survives the minimum length
// filter and the valuation date.
var ErrNoPeriods = errors.New("no contract periods to run out")

// EngineAllocation holds one engine's tier split and revenue for a period.
type EngineAllocation struct {
	EngineID          string  `json:"engineId" yaml:"engineId"`
	WarrantyRateDays  int     `json:"warrantyRateDays" yaml:"warrantyRateDays"`
	FirstRunRateDays  int     `json:"firstRunRateDays" yaml:"firstRunRateDays"`
	SecondRunRateDays int     `json:"secondRunRateDays" yaml:"secondRunRateDays"`
	ThirdRunRateDays  int     `json:"thirdRunRateDays" yaml:"thirdRunRateDays"`
	TotalDays         int     `json:"totalDays" yaml:"totalDays"`
	WarrantyCalc      float64 `json:"warrantyCalc" yaml:"warrantyCalc"`
	FirstRunRateCalc  float64 `json:"firstRunRateCalc" yaml:"firstRunRateCalc"`
	SecondRunRateCalc float64 `json:"secondRunRateCalc" yaml:"secondRunRateCalc"`
	ThirdRunRateCalc  float64 `json:"thirdRunRateCalc" yaml:"thirdRunRateCalc"`
	Rates             float64 `json:"rates" yaml:"rates"`
	EscalatedRate     float64 `json:"escalatedRate" yaml:"escalatedRate"`
	FHUtilization     float64 `json:"fhUtilization" yaml:"fhUtilization"`
	Shortfall         float64 `json:"shortfall" yaml:"shortfall"`
	FHRevenue         float64 `json:"fhRevenue" yaml:"fhRevenue"`
}

// ContractPeriod is one row of the runout schedule.
type ContractPeriod struct {
	StartDate              time.Time          `json:"startDate" yaml:"startDate"`
	EndDate                time.Time          `json:"endDate" yaml:"endDate"`
	NumOfDays              int                `json:"numOfDays" yaml:"numOfDays"`
	RunoutStartDate        time.Time          `json:"runoutStartDate" yaml:"runoutStartDate"`
	RunoutEndDate          time.Time          `json:"runoutEndDate" yaml:"runoutEndDate"`
	NumOfRunoutDays        int                `json:"numOfRunoutDays" yaml:"numOfRunoutDays"`
	ContractYearNumber     int                `json:"contractYearNumber" yaml:"contractYearNumber"`
	RateTrend              float64            `json:"rateTrend" yaml:"rateTrend"`
	Engines                []EngineAllocation `json:"engines" yaml:"engines"`
	TotalFHRevenue         float64            `json:"totalFHRevenue" yaml:"totalFHRevenue"`
	MgmtFeeRevenue         float64            `json:"mgmtFeeRevenue" yaml:"mgmtFeeRevenue"`
	AICRevenue             float64            `json:"aicRevenue" yaml:"aicRevenue"`
	TrustLoadRevenue       float64            `json:"trustLoadRevenue" yaml:"trustLoadRevenue"`
	BuyIn                  float64            `json:"buyIn" yaml:"buyIn"`
	TrustRevenue           float64            `json:"trustRevenue" yaml:"trustRevenue"`
	TotalRevenue           float64            `json:"totalRevenue" yaml:"totalRevenue"`
	CumulativeTotalRevenue float64            `json:"cumulativeTotalRevenue" yaml:"cumulativeTotalRevenue"`
}

// Result is a complete runout schedule with its totals.
type Result struct {
	Periods                []ContractPeriod `json:"periods" yaml:"periods"`
	TotalFHRevenue         float64          `json:"totalFHRevenue" yaml:"totalFHRevenue"`
	MgmtFeeRevenue         float64          `json:"mgmtFeeRevenue" yaml:"mgmtFeeRevenue"`
	AICRevenue             float64          `json:"aicRevenue" yaml:"aicRevenue"`
	TrustLoadRevenue       float64          `json:"trustLoadRevenue" yaml:"trustLoadRevenue"`
	TrustRevenue           float64          `json:"trustRevenue" yaml:"trustRevenue"`
	TotalRevenue           float64          `json:"totalRevenue" yaml:"totalRevenue"`
	BuyIn                  float64          `json:"buyIn" yaml:"buyIn"`
	EnrollmentFees         float64          `json:"enrollmentFees" yaml:"enrollmentFees"`
	CumulativeTotalRevenue float64          `json:"cumulativeTotalRevenue" yaml:"cumulativeTotalRevenue"`
}

// KPI returns the named result figure.
func (r Result) KPI(name string) (float64, error) {
	switch name {
	case KPICumulativeTotalRevenue:
		return r.CumulativeTotalRevenue, nil
	case KPICumulativeTrustRevenue:
		return r.TrustRevenue, nil
	case KPITotalFHRevenue:
		return r.TotalFHRevenue, nil
	}
	return 0, fmt.Errorf("unknown KPI %q", name)
}

// Calculator computes runout schedules.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new calculator instance
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Calculate is a convenience wrapper around Calculator.Calculate.
func Calculate(logger *zap.Logger, params Params) (Result, error) {
	return NewCalculator(logger).Calculate(params)
}

// Calculate validates params and builds the runout schedule.
func (c *Calculator) Calculate(params Params) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid runout parameters: %w", err)
	}
	allocator, err := NewAllocator(params.Allocation)
	if err != nil {
		return Result{}, err
	}

	periods := Partition(params.ContractStartDate, params.ContractEndDate, params.MinPeriodDays)
	windows := RunoutWindows(periods, params.ValuationDate)
	if len(windows) == 0 {
		return Result{}, ErrNoPeriods
	}
	c.logger.Debug(fmt.Sprintf("partitioned contract into %d periods, %d in runout", len(periods), len(windows)),
		zap.String("op", "runout.Calculate"),
	)

	anchor := datetime.Normalize(params.ContractStartDate)
	if !params.ValuationDate.IsZero() {
		anchor = datetime.Normalize(params.ValuationDate)
	}
	milestones := make([]Milestones, len(params.Engines))
	for i, e := range params.Engines {
		milestones[i] = params.milestones(e, anchor)
		if !milestones[i].WarrantyExp.Equal(datetime.Normalize(e.WarrantyExpDate)) {
			c.logger.Debug(fmt.Sprintf("engine %s warranty expires on hours at %s", e.ID, datetime.Format(milestones[i].WarrantyExp)),
				zap.String("op", "runout.Calculate"),
			)
		}
	}

	rates := params.Rates.Effective()
	hoursPerDay := params.HoursPerDay()
	result := Result{
		Periods:        make([]ContractPeriod, 0, len(windows)),
		BuyIn:          params.BuyIn,
		EnrollmentFees: params.EnrollmentFees,
	}

	for i, w := range windows {
		trend, err := rateTrend(params, w.ContractYearNumber)
		if err != nil {
			return Result{}, err
		}

		period := ContractPeriod{
			StartDate:          w.Start,
			EndDate:            w.End,
			NumOfDays:          w.Days,
			RunoutStartDate:    w.RunoutStart,
			RunoutEndDate:      w.RunoutEnd,
			NumOfRunoutDays:    w.RunoutDays,
			ContractYearNumber: w.ContractYearNumber,
			RateTrend:          trend,
			Engines:            make([]EngineAllocation, len(params.Engines)),
		}

		for e, engine := range params.Engines {
			days := allocator.Allocate(w.RunoutStart, w.RunoutEnd, milestones[e])
			if days.Total() != w.RunoutDays {
				return Result{}, fmt.Errorf("engine %s period %d: tier days %d do not cover %d runout days",
					engine.ID, w.ContractYearNumber, days.Total(), w.RunoutDays)
			}
			alloc := allocate(engine.ID, days, rates, trend, hoursPerDay, params.FlightHoursMinimum)
			period.Engines[e] = alloc
			period.TotalFHRevenue += alloc.FHRevenue
		}

		applyFees(&period, params.Fees)
		if i == 0 {
			period.BuyIn = params.BuyIn
		}
		period.TrustRevenue = period.TotalFHRevenue -
			(period.MgmtFeeRevenue + period.AICRevenue + period.TrustLoadRevenue + period.BuyIn)
		period.TotalRevenue = period.MgmtFeeRevenue + period.AICRevenue + period.TrustLoadRevenue +
			period.BuyIn + period.TrustRevenue

		result.TotalFHRevenue += period.TotalFHRevenue
		result.MgmtFeeRevenue += period.MgmtFeeRevenue
		result.AICRevenue += period.AICRevenue
		result.TrustLoadRevenue += period.TrustLoadRevenue
		result.TrustRevenue += period.TrustRevenue
		result.TotalRevenue += period.TotalRevenue
		period.CumulativeTotalRevenue = result.TotalRevenue

		if !mathutil.IsFinite(period.CumulativeTotalRevenue) {
			return Result{}, fmt.Errorf("period %d: revenue is not a finite number", w.ContractYearNumber)
		}
		result.Periods = append(result.Periods, period)
	}
	result.CumulativeTotalRevenue = result.TotalRevenue

	c.logger.Debug(fmt.Sprintf("runout cumulative total revenue %.2f over %d periods", result.CumulativeTotalRevenue, len(result.Periods)),
		zap.String("op", "runout.Calculate"),
	)
	return result, nil
}

// rateTrend returns the escalation multiplier of a contract year, from the
// configured trend list when one is present.
func rateTrend(params Params, contractYear int) (float64, error) {
	if len(params.RateTrend) > 0 {
		if contractYear > len(params.RateTrend) {
			return 0, fmt.Errorf("rateTrend has %d entries, contract year %d needs one", len(params.RateTrend), contractYear)
		}
		return params.RateTrend[contractYear-1], nil
	}
	return mathutil.EscalationFactor(params.RateEscalation, contractYear-1), nil
}

func allocate(id string, days TierDays, rates Rates, trend, hoursPerDay, minimum float64) EngineAllocation {
	a := EngineAllocation{
		EngineID:          id,
		WarrantyRateDays:  days.Warranty,
		FirstRunRateDays:  days.FirstRun,
		SecondRunRateDays: days.SecondRun,
		ThirdRunRateDays:  days.ThirdRun,
		TotalDays:         days.Total(),
	}
	a.WarrantyCalc = float64(days.Warranty) * rates.Warranty
	a.FirstRunRateCalc = float64(days.FirstRun) * rates.FirstRun
	a.SecondRunRateCalc = float64(days.SecondRun) * rates.SecondRun
	a.ThirdRunRateCalc = float64(days.ThirdRun) * rates.ThirdRun
	a.Rates = a.WarrantyCalc + a.FirstRunRateCalc + a.SecondRunRateCalc + a.ThirdRunRateCalc
	a.EscalatedRate = a.Rates * trend
	a.FHUtilization = hoursPerDay * float64(a.TotalDays)
	a.Shortfall = mathutil.NonNegative(minimum - a.FHUtilization)
	a.FHRevenue = a.EscalatedRate * hoursPerDay
	return a
}

// applyFees splits the management fee off flight-hour revenue and takes the
// AIC and trust load out of what remains.
func applyFees(period *ContractPeriod, fees Fees) {
	net := period.TotalFHRevenue * mathutil.Complement(fees.Management)
	period.MgmtFeeRevenue = mathutil.ApplyPercentage(period.TotalFHRevenue, fees.Management)
	period.AICRevenue = mathutil.ApplyPercentage(net, fees.AIC)
	period.TrustLoadRevenue = mathutil.ApplyPercentage(net, fees.TrustLoad)
}
