// Package format renders numbers for console and CSV output.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + NumericCurrency(math.Abs(amount))
	}
	return "$" + NumericCurrency(amount)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	// Avoid rendering "-0.00" for values that round to zero.
	if math.Abs(amount) < 0.005 {
		amount = 0
	}
	return printer.Sprintf("%.2f", amount)
}

// Rate renders a per-flight-hour rate with four decimals.
func Rate(rate float64) string {
	return printer.Sprintf("%.4f", rate)
}

// Hours renders flight hours with one decimal and separators.
func Hours(hours float64) string {
	return printer.Sprintf("%.1f", hours)
}

// Integer renders a whole number with separators.
func Integer(n int) string {
	return printer.Sprintf("%d", n)
}
