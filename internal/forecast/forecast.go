// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"errors"
	"fmt"

	"github.com/iwvelando/lease-forecast/internal/config"
	"github.com/iwvelando/lease-forecast/internal/goalseek"
	"github.com/iwvelando/lease-forecast/internal/runout"
	"github.com/iwvelando/lease-forecast/pkg/lease"
	"github.com/iwvelando/lease-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// ErrNoRunout is returned by GetRunout when the configuration has no runout
// section.
var ErrNoRunout = errors.New("configuration has no runout section")

// Forecast holds the lease projection of one scenario.
type Forecast struct {
	Name             string                `json:"name" yaml:"name"`
	Rate             float64               `json:"rate" yaml:"rate"`
	Schedule         []lease.YearRow       `json:"schedule" yaml:"schedule"`
	CumulativeProfit float64               `json:"cumulativeProfit" yaml:"cumulativeProfit"`
	GoalSeek         *optimization.Summary `json:"goalSeek,omitempty" yaml:"goalSeek,omitempty"`
	SolvedSchedule   []lease.YearRow       `json:"solvedSchedule,omitempty" yaml:"solvedSchedule,omitempty"`
}

// Runout holds the runout schedule and, when a goal seek is configured, the
// schedule recomputed at the solved rate.
type Runout struct {
	Result   runout.Result         `json:"result" yaml:"result"`
	GoalSeek *optimization.Summary `json:"goalSeek,omitempty" yaml:"goalSeek,omitempty"`
	Solved   *runout.Result        `json:"solved,omitempty" yaml:"solved,omitempty"`
}

// GetForecast processes the Forecasts for all Scenarios.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Forecast
	generator := lease.NewScheduleGenerator(logger)
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		params := scenario.Lease.Params()
		rate := scenario.LeaseRate()
		schedule, err := generator.GenerateSchedule(rate, params)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		result := Forecast{
			Name:     scenario.Name,
			Rate:     rate,
			Schedule: schedule,
		}
		if len(schedule) > 0 {
			result.CumulativeProfit = schedule[len(schedule)-1].CumulativeProfit
		}

		if settings, ok := scenario.GoalSeekSettings(); ok {
			summary, err := goalseek.SeekLeaseRate(logger, params, settings)
			if err != nil {
				return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}
			result.GoalSeek = &summary
			result.SolvedSchedule, err = generator.GenerateSchedule(summary.Value, params)
			if err != nil {
				return results, fmt.Errorf("scenario %s: solved schedule: %w", scenario.Name, err)
			}
		}

		logger.Debug("scenario projected",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", scenario.Name),
			zap.Float64("rate", rate),
			zap.Float64("cumulativeProfit", result.CumulativeProfit),
		)
		results = append(results, result)
	}

	return results, nil
}

// GetRunout computes the runout schedule of the configuration. Dates must
// have been parsed.
func GetRunout(logger *zap.Logger, conf config.Configuration) (*Runout, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf.Runout == nil {
		return nil, ErrNoRunout
	}
	if err := conf.Runout.Validate(); err != nil {
		return nil, fmt.Errorf("runout: %w", err)
	}

	params := conf.Runout.Params()
	calculator := runout.NewCalculator(logger)
	result, err := calculator.Calculate(params)
	if err != nil {
		return nil, err
	}
	out := &Runout{Result: result}

	settings, ok := conf.Runout.GoalSeekSettings()
	if !ok {
		return out, nil
	}

	summary, err := goalseek.SeekRunoutRate(logger, params, settings)
	if err != nil {
		return out, fmt.Errorf("runout: %w", err)
	}
	out.GoalSeek = &summary

	solvedParams, err := params.WithRate(summary.Field, summary.Value)
	if err != nil {
		return out, err
	}
	solved, err := calculator.Calculate(solvedParams)
	if err != nil {
		return out, fmt.Errorf("runout: solved schedule: %w", err)
	}
	out.Solved = &solved

	logger.Info("runout goal seek applied",
		zap.String("op", "forecast.GetRunout"),
		zap.String("parameter", summary.Field),
		zap.Float64("value", summary.Value),
		zap.Float64("cumulativeTotalRevenue", solved.CumulativeTotalRevenue),
	)
	return out, nil
}
