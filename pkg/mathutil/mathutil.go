// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/lease-forecast/pkg/constants"
)

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Complement returns the share left over after a percentage is taken out,
// e.g. Complement(15) == 0.85.
func Complement(percentage float64) float64 {
	return 1 - percentage/constants.PercentageMultiplier
}

// EscalationFactor returns the compound growth multiplier after the given
// number of periods at an annual percentage rate.
func EscalationFactor(ratePercent float64, periods int) float64 {
	return math.Pow(1+ratePercent/constants.PercentageMultiplier, float64(periods))
}

// NonNegative clamps negative values to zero.
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}
