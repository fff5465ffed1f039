package runout

import (
	"testing"
	"time"

	"github.com/iwvelando/lease-forecast/pkg/datetime"
)

func TestPeriodEnd(t *testing.T) {
	tests := []struct {
		start    string
		expected string
	}{
		{"2022-01-14", "2022-12-31"},
		{"2022-01-01", "2022-12-31"},
		{"2022-01-15", "2023-01-31"},
		{"2023-01-01", "2023-12-31"},
		{"2024-03-20", "2025-03-31"},
		{"2023-03-01", "2024-02-29"},
		{"2022-12-10", "2023-11-30"},
		{"2022-12-31", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := datetime.Format(periodEnd(datetime.MustParseDate(tt.start)))
			if got != tt.expected {
				t.Errorf("periodEnd(%s) = %s, expected %s", tt.start, got, tt.expected)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	start := datetime.MustParseDate("2022-01-14")
	end := datetime.MustParseDate("2034-02-14")

	t.Run("Drops short periods", func(t *testing.T) {
		periods := Partition(start, end, 300)
		if len(periods) != 12 {
			t.Fatalf("expected 12 periods, got %d", len(periods))
		}
		if periods[0].Days != 352 || periods[11].ContractYearNumber != 12 {
			t.Errorf("unexpected periods: first %+v last %+v", periods[0], periods[11])
		}
		if datetime.Format(periods[11].End) != "2033-12-31" {
			t.Errorf("last retained period ends %s", datetime.Format(periods[11].End))
		}
	})

	t.Run("Keeps every period", func(t *testing.T) {
		periods := Partition(start, end, 0)
		if len(periods) != 13 {
			t.Fatalf("expected 13 periods, got %d", len(periods))
		}
		total := 0
		for i, p := range periods {
			total += p.Days
			if p.ContractYearNumber != i+1 {
				t.Errorf("period %d numbered %d", i, p.ContractYearNumber)
			}
			if i > 0 && !p.Start.Equal(datetime.AddDays(periods[i-1].End, 1)) {
				t.Errorf("gap or overlap between period %d and %d", i, i+1)
			}
		}
		if total != datetime.DaysInclusive(start, end) {
			t.Errorf("period days sum to %d, expected %d", total, datetime.DaysInclusive(start, end))
		}
		last := periods[12]
		if datetime.Format(last.Start) != "2034-01-01" || datetime.Format(last.End) != "2034-02-14" || last.Days != 45 {
			t.Errorf("unexpected stub period %+v", last)
		}
	})

	t.Run("Late-month start", func(t *testing.T) {
		periods := Partition(datetime.MustParseDate("2024-03-20"), datetime.MustParseDate("2027-03-19"), 0)
		expected := [][2]string{
			{"2024-03-20", "2025-03-31"},
			{"2025-04-01", "2026-03-31"},
			{"2026-04-01", "2027-03-19"},
		}
		if len(periods) != len(expected) {
			t.Fatalf("expected %d periods, got %d", len(expected), len(periods))
		}
		for i, e := range expected {
			if datetime.Format(periods[i].Start) != e[0] || datetime.Format(periods[i].End) != e[1] {
				t.Errorf("period %d = %s..%s, expected %s..%s", i+1,
					datetime.Format(periods[i].Start), datetime.Format(periods[i].End), e[0], e[1])
			}
		}
	})

	t.Run("Single day contract", func(t *testing.T) {
		periods := Partition(start, start, 0)
		if len(periods) != 1 || periods[0].Days != 1 {
			t.Errorf("expected one single-day period, got %+v", periods)
		}
	})

	t.Run("Short contract", func(t *testing.T) {
		stub := Partition(datetime.MustParseDate("2022-01-14"), datetime.MustParseDate("2022-03-31"), 300)
		if len(stub) != 0 {
			t.Errorf("expected the short contract to be dropped, got %+v", stub)
		}
	})
}

func TestRunoutWindows(t *testing.T) {
	periods := Partition(datetime.MustParseDate("2022-01-14"), datetime.MustParseDate("2034-02-14"), 300)

	tests := []struct {
		name        string
		valuation   time.Time
		count       int
		firstStart  string
		firstDays   int
		firstYearNo int
	}{
		{"No valuation", time.Time{}, 12, "2022-01-14", 352, 1},
		{"Before contract", datetime.MustParseDate("2020-01-01"), 12, "2022-01-14", 352, 1},
		{"Mid period", datetime.MustParseDate("2024-06-15"), 10, "2024-06-15", 200, 3},
		{"First day of period", datetime.MustParseDate("2025-01-01"), 9, "2025-01-01", 365, 4},
		{"Last day of period", datetime.MustParseDate("2025-12-31"), 9, "2025-12-31", 1, 4},
		{"Inside dropped stub", datetime.MustParseDate("2034-01-20"), 0, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := RunoutWindows(periods, tt.valuation)
			if len(windows) != tt.count {
				t.Fatalf("expected %d windows, got %d", tt.count, len(windows))
			}
			if tt.count == 0 {
				return
			}
			first := windows[0]
			if datetime.Format(first.RunoutStart) != tt.firstStart || first.RunoutDays != tt.firstDays ||
				first.ContractYearNumber != tt.firstYearNo {
				t.Errorf("first window = %s, %d days, year %d", datetime.Format(first.RunoutStart),
					first.RunoutDays, first.ContractYearNumber)
			}
			for _, w := range windows[1:] {
				if !w.RunoutStart.Equal(w.Start) || w.RunoutDays != w.Days {
					t.Errorf("later window for year %d should be whole", w.ContractYearNumber)
				}
			}
		})
	}
}
