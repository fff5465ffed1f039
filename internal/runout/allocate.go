package runout

import (
	"fmt"
	"time"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/datetime"
)

// Milestones are the last days of the warranty, first and second run-rate
// tiers plus the third run-rate switch date.
type Milestones struct {
	WarrantyExp time.Time
	FirstRun    time.Time
	SecondRun   time.Time
	ThirdRun    time.Time
}

// TierDays are the day counts of each rate tier inside one window.
type TierDays struct {
	Warranty  int
	FirstRun  int
	SecondRun int
	ThirdRun  int
}

// Total sums the four tiers.
func (d TierDays) Total() int {
	return d.Warranty + d.FirstRun + d.SecondRun + d.ThirdRun
}

// Allocator splits the days of [start, end] across the rate tiers.
type Allocator interface {
	Allocate(start, end time.Time, m Milestones) TierDays
}

// NewAllocator returns the allocator registered under name. An empty name
// selects the overlap strategy.
func NewAllocator(name string) (Allocator, error) {
	switch name {
	case "", constants.AllocationOverlap:
		return OverlapAllocator{}, nil
	case constants.AllocationCumulative:
		return CumulativeAllocator{}, nil
	}
	return nil, fmt.Errorf("unknown allocation strategy %q (expected %s or %s)",
		name, constants.AllocationOverlap, constants.AllocationCumulative)
}

// OverlapAllocator clips each tier's own date range to the window.
type OverlapAllocator struct{}

// Allocate implements Allocator.
func (OverlapAllocator) Allocate(start, end time.Time, m Milestones) TierDays {
	thirdEnd := m.ThirdRun
	if end.After(m.ThirdRun) {
		// The third tier carries on past its switch date.
		thirdEnd = end
	}
	return TierDays{
		Warranty:  datetime.OverlapDays(start, m.WarrantyExp, start, end),
		FirstRun:  datetime.OverlapDays(datetime.AddDays(m.WarrantyExp, 1), m.FirstRun, start, end),
		SecondRun: datetime.OverlapDays(datetime.AddDays(m.FirstRun, 1), m.SecondRun, start, end),
		ThirdRun:  datetime.OverlapDays(datetime.AddDays(m.SecondRun, 1), thirdEnd, start, end),
	}
}

// CumulativeAllocator counts the window days elapsed through each milestone
// and takes differences of the running totals. The third tier takes the
// remainder of the window.
type CumulativeAllocator struct{}

// Allocate implements Allocator.
func (CumulativeAllocator) Allocate(start, end time.Time, m Milestones) TierDays {
	total := datetime.DaysInclusive(start, end)
	through := func(milestone time.Time) int {
		switch {
		case milestone.Before(start):
			return 0
		case milestone.After(end):
			return total
		}
		return datetime.DaysInclusive(start, milestone)
	}

	warranty := through(m.WarrantyExp)
	first := through(m.FirstRun)
	second := through(m.SecondRun)
	return TierDays{
		Warranty:  warranty,
		FirstRun:  first - warranty,
		SecondRun: second - first,
		ThirdRun:  total - second,
	}
}
