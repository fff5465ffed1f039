package runout

import (
	"time"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/datetime"
)

// Period is one contract year.
type Period struct {
	Start              time.Time
	End                time.Time
	Days               int
	ContractYearNumber int
}

// periodEnd returns the last day of the contract year starting at start. A
// start on or before the mid-month cutoff closes the year at the end of the
// month before its anniversary; a later start closes it at the end of the
// anniversary month.
func periodEnd(start time.Time) time.Time {
	if start.Day() <= constants.MidMonthCutoffDay {
		return datetime.LastDayOfMonth(start.Year()+1, start.Month()-1)
	}
	return datetime.LastDayOfMonth(start.Year()+1, start.Month())
}

// Partition splits [start, end] into consecutive contract years. The final
// year is truncated to end. Years shorter than minDays are dropped and
// contract-year numbers count retained years only, so with minDays of zero
// the day counts sum to the whole contract span.
func Partition(start, end time.Time, minDays int) []Period {
	start = datetime.Normalize(start)
	end = datetime.Normalize(end)

	var periods []Period
	year := 1
	for current := start; !current.After(end); {
		last := datetime.Earliest(periodEnd(current), end)
		days := datetime.DaysInclusive(current, last)
		if days >= minDays {
			periods = append(periods, Period{
				Start:              current,
				End:                last,
				Days:               days,
				ContractYearNumber: year,
			})
			year++
		}
		current = datetime.AddDays(last, 1)
	}
	return periods
}

// Window is the part of a contract year that remains after the valuation
// date.
type Window struct {
	Period
	RunoutStart time.Time
	RunoutEnd   time.Time
	RunoutDays  int
}

// RunoutWindows drops periods that end before valuation and starts the
// window of the period containing it on the valuation date. A zero
// valuation keeps every period whole.
func RunoutWindows(periods []Period, valuation time.Time) []Window {
	if !valuation.IsZero() {
		valuation = datetime.Normalize(valuation)
	}
	windows := make([]Window, 0, len(periods))
	for _, p := range periods {
		runoutStart := p.Start
		if !valuation.IsZero() {
			if p.End.Before(valuation) {
				continue
			}
			runoutStart = datetime.Latest(p.Start, valuation)
		}
		windows = append(windows, Window{
			Period:      p,
			RunoutStart: runoutStart,
			RunoutEnd:   p.End,
			RunoutDays:  datetime.DaysInclusive(runoutStart, p.End),
		})
	}
	return windows
}
