package config

import (
	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/lease"
)

// LeaseConfig holds the projection inputs of a scenario. Unset values take
// the reference defaults.
type LeaseConfig struct {
	NumYears       *int     `yaml:"numYears,omitempty" mapstructure:"numYears"`
	AUHours        *float64 `yaml:"auHours,omitempty" mapstructure:"auHours"`
	InitialTSN     *float64 `yaml:"initialTSN,omitempty" mapstructure:"initialTSN"`
	RateEscalation *float64 `yaml:"rateEscalation,omitempty" mapstructure:"rateEscalation"`
	AIC            *float64 `yaml:"aic,omitempty" mapstructure:"aic"`
	HSITSN         *float64 `yaml:"hsiTSN,omitempty" mapstructure:"hsiTSN"`
	OverhaulTSN    *float64 `yaml:"overhaulTSN,omitempty" mapstructure:"overhaulTSN"`
	HSICost        *float64 `yaml:"hsiCost,omitempty" mapstructure:"hsiCost"`
	OverhaulCost   *float64 `yaml:"overhaulCost,omitempty" mapstructure:"overhaulCost"`
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Params resolves the lease inputs against the defaults.
func (l LeaseConfig) Params() lease.Params {
	p := lease.DefaultParams()
	if l.NumYears != nil {
		p.NumYears = *l.NumYears
	}
	p.AUHours = floatOr(l.AUHours, p.AUHours)
	p.InitialTSN = floatOr(l.InitialTSN, p.InitialTSN)
	p.RateEscalation = floatOr(l.RateEscalation, p.RateEscalation)
	p.AIC = floatOr(l.AIC, p.AIC)
	p.HSITSN = floatOr(l.HSITSN, p.HSITSN)
	p.OverhaulTSN = floatOr(l.OverhaulTSN, p.OverhaulTSN)
	p.HSICost = floatOr(l.HSICost, p.HSICost)
	p.OverhaulCost = floatOr(l.OverhaulCost, p.OverhaulCost)
	return p
}

// LeaseRate returns the scenario's base rate, defaulting to the reference rate.
func (s Scenario) LeaseRate() float64 {
	return floatOr(s.Rate, constants.DefaultRate)
}
