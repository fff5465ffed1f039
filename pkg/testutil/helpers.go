// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/lease-forecast/internal/forecast"
	"github.com/iwvelando/lease-forecast/internal/runout"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindPeriod returns the runout period for a contract year number, or nil.
func FindPeriod(result runout.Result, contractYear int) *runout.ContractPeriod {
	for i := range result.Periods {
		if result.Periods[i].ContractYearNumber == contractYear {
			return &result.Periods[i]
		}
	}
	return nil
}

// FindEngine returns the allocation for an engine within a period, or nil.
func FindEngine(period *runout.ContractPeriod, engineID string) *runout.EngineAllocation {
	if period == nil {
		return nil
	}
	for i := range period.Engines {
		if period.Engines[i].EngineID == engineID {
			return &period.Engines[i]
		}
	}
	return nil
}
