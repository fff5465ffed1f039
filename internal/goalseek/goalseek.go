// Package goalseek finds the input rate at which a lease projection or a
// runout schedule reaches a target figure.
package goalseek

import (
	"fmt"
	"strings"

	"github.com/iwvelando/lease-forecast/internal/runout"
	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/format"
	"github.com/iwvelando/lease-forecast/pkg/lease"
	"github.com/iwvelando/lease-forecast/pkg/optimization"
	"github.com/iwvelando/lease-forecast/pkg/rootfind"
	"go.uber.org/zap"
)

// FieldRate is the field reported for lease goal seeks.
const FieldRate = "rate"

// KPICumulativeProfit is the figure a lease goal seek targets.
const KPICumulativeProfit = "cumulativeProfit"

// Settings describes one goal seek.
type Settings struct {
	Name          string
	Method        string
	Target        float64
	InitialGuess  float64
	Lower         float64
	Upper         float64
	Tolerance     float64
	MaxIterations int
	// KPI and Parameter apply to runout goal seeks only.
	KPI       string
	Parameter string
}

// CanonicalMethod maps method aliases onto the supported names.
func CanonicalMethod(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "secant":
		return constants.MethodSecant
	case "brent", "brentq", "bisect":
		return constants.MethodBrent
	case "newton", "newton-raphson", "newtonraphson":
		return constants.MethodNewton
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// withDefaults fills unset numeric settings.
func (s Settings) withDefaults() Settings {
	s.Method = CanonicalMethod(s.Method)
	if s.Tolerance <= 0 {
		s.Tolerance = constants.DefaultTolerance
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = constants.DefaultMaxIterations
	}
	if s.Lower == 0 && s.Upper == 0 {
		s.Lower = constants.DefaultLowerBound
		s.Upper = constants.DefaultUpperBound
	}
	return s
}

// Validate returns an error when the settings cannot drive a root finder.
func (s Settings) Validate() error {
	s = s.withDefaults()
	switch s.Method {
	case constants.MethodSecant, constants.MethodBrent, constants.MethodNewton:
	default:
		return fmt.Errorf("goal seek method %q is not supported", s.Method)
	}
	if s.Method == constants.MethodBrent && s.Lower >= s.Upper {
		return fmt.Errorf("goal seek lower bound %v must be less than upper bound %v", s.Lower, s.Upper)
	}
	if s.InitialGuess < 0 {
		return fmt.Errorf("goal seek initial guess cannot be negative")
	}
	return nil
}

// Runner drives a root finder over an objective of the form
// target - computed(x).
type Runner struct {
	logger   *zap.Logger
	settings Settings
}

// NewRunner constructs a Runner for the provided settings.
func NewRunner(logger *zap.Logger, settings Settings) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Runner{logger: logger, settings: settings.withDefaults()}, nil
}

// Settings returns the effective settings after defaults.
func (r *Runner) Settings() Settings {
	return r.settings
}

// Solve finds x where compute(x) equals the target, starting from initial.
func (r *Runner) Solve(compute func(float64) (float64, error), initial float64) (rootfind.Result, error) {
	objective := func(x float64) (float64, error) {
		v, err := compute(x)
		if err != nil {
			return 0, err
		}
		return r.settings.Target - v, nil
	}
	opts := rootfind.Options{
		XTol:          r.settings.Tolerance,
		FTol:          r.settings.Tolerance,
		MaxIterations: r.settings.MaxIterations,
		Logger:        r.logger,
	}

	switch r.settings.Method {
	case constants.MethodBrent:
		return rootfind.Brent(objective, r.settings.Lower, r.settings.Upper, opts)
	case constants.MethodNewton:
		return rootfind.NewtonRaphson(objective, initial, opts)
	default:
		second := initial * constants.DefaultSecantStepFactor
		if second == initial {
			second = initial + 1
		}
		return rootfind.Secant(objective, initial, second, opts)
	}
}

// seek runs the solver and assembles a summary around its result.
func (r *Runner) seek(summary optimization.Summary, compute func(float64) (float64, error)) (optimization.Summary, error) {
	summary.Method = r.settings.Method
	summary.Target = r.settings.Target
	summary.OriginalDisplay = format.Rate(summary.Original)

	result, err := r.Solve(compute, summary.Original)
	summary.Iterations = result.Iterations
	summary.FunctionCalls = result.FunctionCalls
	if err != nil {
		summary.Notes = append(summary.Notes, err.Error())
		return summary, fmt.Errorf("goal seek %s %s on %s: %w", summary.Scope, summary.TargetName, summary.Field, err)
	}

	achieved, err := compute(result.Root)
	if err != nil {
		return summary, err
	}
	summary.Value = result.Root
	summary.ValueDisplay = format.Rate(result.Root)
	summary.Achieved = achieved
	summary.Residual = summary.Target - achieved
	summary.Converged = result.Converged

	r.logger.Info("goal seek solved",
		zap.String("op", "goalseek.seek"),
		zap.String("scope", summary.Scope),
		zap.String("name", summary.TargetName),
		zap.String("field", summary.Field),
		zap.String("method", summary.Method),
		zap.Float64("target", summary.Target),
		zap.Float64("original", summary.Original),
		zap.Float64("value", summary.Value),
		zap.Float64("achieved", summary.Achieved),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
		zap.Stringer("summary", summary),
	)
	return summary, nil
}

// SeekLeaseRate finds the base lease rate whose projection ends with the
// target cumulative profit. The search starts from settings.InitialGuess.
func SeekLeaseRate(logger *zap.Logger, params lease.Params, settings Settings) (optimization.Summary, error) {
	if err := params.Validate(); err != nil {
		return optimization.Summary{}, fmt.Errorf("invalid lease parameters: %w", err)
	}
	runner, err := NewRunner(logger, settings)
	if err != nil {
		return optimization.Summary{}, err
	}

	summary := optimization.Summary{
		Scope:      optimization.ScopeLease,
		TargetName: settings.Name,
		Field:      FieldRate,
		KPI:        KPICumulativeProfit,
		Original:   settings.InitialGuess,
	}
	return runner.seek(summary, func(rate float64) (float64, error) {
		return lease.CalculateFinancials(rate, params)
	})
}

// SeekRunoutRate finds the value of one tier rate at which the chosen runout
// KPI reaches the target. Without an initial guess the search starts from the
// tier's effective rate.
func SeekRunoutRate(logger *zap.Logger, params runout.Params, settings Settings) (optimization.Summary, error) {
	if err := params.Validate(); err != nil {
		return optimization.Summary{}, fmt.Errorf("invalid runout parameters: %w", err)
	}
	if settings.KPI == "" {
		settings.KPI = runout.KPICumulativeTotalRevenue
	}
	if settings.Parameter == "" {
		settings.Parameter = runout.ParamFirstRunRate
	}
	if _, err := (runout.Result{}).KPI(settings.KPI); err != nil {
		return optimization.Summary{}, err
	}

	effective := params
	effective.Rates = params.Rates.Effective()
	original, err := effective.Rate(settings.Parameter)
	if err != nil {
		return optimization.Summary{}, err
	}
	if settings.InitialGuess > 0 {
		original = settings.InitialGuess
	}

	runner, err := NewRunner(logger, settings)
	if err != nil {
		return optimization.Summary{}, err
	}
	calculator := runout.NewCalculator(nil)

	summary := optimization.Summary{
		Scope:      optimization.ScopeRunout,
		TargetName: settings.Name,
		Field:      settings.Parameter,
		KPI:        settings.KPI,
		Original:   original,
	}
	return runner.seek(summary, func(rate float64) (float64, error) {
		trial, err := params.WithRate(settings.Parameter, rate)
		if err != nil {
			return 0, err
		}
		result, err := calculator.Calculate(trial)
		if err != nil {
			return 0, err
		}
		return result.KPI(settings.KPI)
	})
}
