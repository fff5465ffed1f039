package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/lease-forecast/internal/goalseek"
	"github.com/iwvelando/lease-forecast/internal/runout"
	"github.com/iwvelando/lease-forecast/pkg/constants"
)

// GoalSeekConfig defines a single goal seek directive.
type GoalSeekConfig struct {
	Method        string   `yaml:"method,omitempty" mapstructure:"method"`
	Target        float64  `yaml:"target" mapstructure:"target"`
	InitialGuess  float64  `yaml:"initialGuess,omitempty" mapstructure:"initialGuess"`
	Lower         *float64 `yaml:"lower,omitempty" mapstructure:"lower"`
	Upper         *float64 `yaml:"upper,omitempty" mapstructure:"upper"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	// KPI and Parameter apply to the runout goal seek.
	KPI       string `yaml:"kpi,omitempty" mapstructure:"kpi"`
	Parameter string `yaml:"parameter,omitempty" mapstructure:"parameter"`
}

// canonicalKey lowers a name and drops separators so that
// "CumulativeTotalRevenue", "cumulative_total_revenue" and
// "cumulativeTotalRevenue" compare equal.
func canonicalKey(value string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(value)))
}

// CanonicalKPI returns the canonical identifier for a runout KPI.
func CanonicalKPI(value string) string {
	switch canonicalKey(value) {
	case "":
		return ""
	case "cumulativetotalrevenue":
		return runout.KPICumulativeTotalRevenue
	case "cumulativetrustrevenue", "trustrevenue":
		return runout.KPICumulativeTrustRevenue
	case "totalfhrevenue", "fhrevenue":
		return runout.KPITotalFHRevenue
	default:
		return strings.TrimSpace(value)
	}
}

// CanonicalParameter returns the canonical identifier for a runout rate
// parameter.
func CanonicalParameter(value string) string {
	switch canonicalKey(value) {
	case "":
		return ""
	case "warrantyrate":
		return runout.ParamWarrantyRate
	case "firstrunrate":
		return runout.ParamFirstRunRate
	case "secondrunrate":
		return runout.ParamSecondRunRate
	case "thirdrunrate":
		return runout.ParamThirdRunRate
	default:
		return strings.TrimSpace(value)
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (g *GoalSeekConfig) Normalize() {
	if g == nil {
		return
	}
	g.Method = goalseek.CanonicalMethod(g.Method)
	if g.Tolerance <= 0 {
		g.Tolerance = constants.DefaultTolerance
	}
	if g.MaxIterations <= 0 {
		g.MaxIterations = constants.DefaultMaxIterations
	}
	if g.Lower == nil {
		lower := constants.DefaultLowerBound
		g.Lower = &lower
	}
	if g.Upper == nil {
		upper := constants.DefaultUpperBound
		g.Upper = &upper
	}
	g.KPI = CanonicalKPI(g.KPI)
	g.Parameter = CanonicalParameter(g.Parameter)
}

// Validate returns an error when the goal seek configuration is unsupported.
func (g *GoalSeekConfig) Validate() error {
	if g == nil {
		return fmt.Errorf("goal seek configuration cannot be nil")
	}

	g.Normalize()

	if err := g.Settings("").Validate(); err != nil {
		return err
	}
	if g.KPI != "" {
		if _, err := (runout.Result{}).KPI(g.KPI); err != nil {
			return fmt.Errorf("goal seek kpi %q is not supported", g.KPI)
		}
	}
	if g.Parameter != "" {
		if _, err := (runout.Params{}).Rate(g.Parameter); err != nil {
			return fmt.Errorf("goal seek parameter %q is not supported", g.Parameter)
		}
	}
	return nil
}

// Settings converts the directive into runner settings.
func (g GoalSeekConfig) Settings(name string) goalseek.Settings {
	s := goalseek.Settings{
		Name:          name,
		Method:        g.Method,
		Target:        g.Target,
		InitialGuess:  g.InitialGuess,
		Tolerance:     g.Tolerance,
		MaxIterations: g.MaxIterations,
		KPI:           g.KPI,
		Parameter:     g.Parameter,
	}
	if g.Lower != nil {
		s.Lower = *g.Lower
	}
	if g.Upper != nil {
		s.Upper = *g.Upper
	}
	return s
}
