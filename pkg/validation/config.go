// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"
)

// ValidateValuationDate checks where the valuation date falls in the contract.
// Dates are YYYY-MM-DD strings, which order lexically.
func ValidateValuationDate(valuationDate, contractStart, contractEnd string) []string {
	var warnings []string
	if valuationDate == "" {
		return warnings
	}

	if valuationDate < contractStart {
		warnings = append(warnings, fmt.Sprintf("Valuation date is before contract start (%s < %s) - the whole contract is run out",
			valuationDate, contractStart))
	}
	if valuationDate == contractEnd {
		warnings = append(warnings, fmt.Sprintf("Valuation date is the contract end date (%s) - only one day is run out",
			valuationDate))
	}

	return warnings
}

// ValidateEngineDates checks an engine's milestones against the contract window
func ValidateEngineDates(engineID, warrantyExpDate, contractStart, contractEnd string) []string {
	var warnings []string

	if warrantyExpDate > contractEnd {
		warnings = append(warnings, fmt.Sprintf("Engine '%s' warranty expires after contract end (%s > %s) - only the warranty rate applies",
			engineID, warrantyExpDate, contractEnd))
	}
	if warrantyExpDate == contractStart {
		warnings = append(warnings, fmt.Sprintf("Engine '%s' warranty expires on the contract start date (%s) - the warranty rate applies for one day",
			engineID, warrantyExpDate))
	}

	return warnings
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Scenarios []ScenarioConfig
	Runout    *RunoutConfig
}

// ScenarioConfig is the part of a lease scenario that warnings look at.
type ScenarioConfig struct {
	Name           string
	Active         bool
	GoalSeekTarget *float64
}

// RunoutConfig is the part of a runout section that warnings look at.
type RunoutConfig struct {
	ContractStartDate string
	ContractEndDate   string
	ValuationDate     string
	RateTrendLength   int
	ContractYears     int
	WarrantyRate      float64
	Engines           []EngineConfig
}

// EngineConfig is the part of an engine that warnings look at.
type EngineConfig struct {
	ID              string
	WarrantyExpDate string
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	activeCount := 0
	seen := make(map[string]bool)
	for _, scenario := range cv.Scenarios {
		if !scenario.Active {
			continue
		}
		activeCount++
		name := strings.TrimSpace(scenario.Name)
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once - results will be hard to tell apart", name))
		}
		seen[name] = true
		if scenario.GoalSeekTarget != nil && *scenario.GoalSeekTarget <= 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' goal seek target %.2f is not positive", name, *scenario.GoalSeekTarget))
		}
	}

	if activeCount == 0 && cv.Runout == nil {
		warnings = append(warnings, "No active scenarios or runout contract configured - nothing will be projected")
	}

	if cv.Runout == nil {
		return warnings
	}

	r := cv.Runout
	warnings = append(warnings, ValidateValuationDate(r.ValuationDate, r.ContractStartDate, r.ContractEndDate)...)

	if r.RateTrendLength > 0 && r.RateTrendLength < r.ContractYears {
		warnings = append(warnings, fmt.Sprintf("Rate trend lists %d values but the contract spans %d contract years",
			r.RateTrendLength, r.ContractYears))
	}
	if r.WarrantyRate == 0 {
		warnings = append(warnings, "Warranty rate is zero - tiers without their own rate will also be zero")
	}

	engineIDs := make(map[string]bool)
	for _, engine := range r.Engines {
		if engineIDs[engine.ID] {
			warnings = append(warnings, fmt.Sprintf("Engine '%s' is listed more than once", engine.ID))
		}
		engineIDs[engine.ID] = true
		warnings = append(warnings, ValidateEngineDates(engine.ID, engine.WarrantyExpDate, r.ContractStartDate, r.ContractEndDate)...)
	}

	return warnings
}
