package lease

import (
	"testing"

	"github.com/iwvelando/lease-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

func TestCalculateFinancials(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		params   func() Params
		expected float64
	}{
		{
			name:     "Reference rate",
			rate:     320,
			params:   DefaultParams,
			expected: 1842338.1776309349,
		},
		{
			name:     "Rate reaching three million",
			rate:     505.93820432563246,
			params:   DefaultParams,
			expected: 3000000,
		},
		{
			name:     "Zero rate leaves only maintenance cost",
			rate:     0,
			params:   DefaultParams,
			expected: -150000,
		},
		{
			name: "Single year past both thresholds",
			rate: 320,
			params: func() Params {
				p := DefaultParams()
				p.NumYears = 1
				p.InitialTSN = 5000
				return p
			},
			expected: 8400,
		},
		{
			name: "No escalation",
			rate: 100,
			params: func() Params {
				p := DefaultParams()
				p.RateEscalation = 0
				p.AIC = 0
				return p
			},
			expected: 10*450*100 - 150000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateFinancials(tt.rate, tt.params())
			if err != nil {
				t.Fatalf("CalculateFinancials() error = %v", err)
			}
			if !mathutil.WithinTolerance(got, tt.expected, 1e-6) {
				t.Errorf("CalculateFinancials(%v) = %.6f, expected %.6f", tt.rate, got, tt.expected)
			}
		})
	}
}

func TestCalculateFinancialsOverflow(t *testing.T) {
	if _, err := CalculateFinancials(1e308, DefaultParams()); err == nil {
		t.Error("expected an error for a non-finite profit")
	}
}

func TestGenerateSchedule(t *testing.T) {
	gen := NewScheduleGenerator(zap.NewNop())
	rows, err := gen.GenerateSchedule(320, DefaultParams())
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.TSN != 550 || first.EscalatedRate != 320 || first.EngineRevenue != 144000 {
		t.Errorf("unexpected first row: %+v", first)
	}
	if !mathutil.WithinTolerance(first.TotalRevenue, 158400, 1e-9) || first.TotalCost != 0 {
		t.Errorf("unexpected first row revenue/cost: %+v", first)
	}

	for _, row := range rows {
		wantHSI := row.Year == 2
		wantOverhaul := row.Year == 7
		if row.HSI != wantHSI {
			t.Errorf("year %d: HSI = %v, expected %v", row.Year, row.HSI, wantHSI)
		}
		if row.Overhaul != wantOverhaul {
			t.Errorf("year %d: Overhaul = %v, expected %v", row.Year, row.Overhaul, wantOverhaul)
		}
	}

	if rows[1].TotalCost != 50000 || rows[6].TotalCost != 100000 {
		t.Errorf("maintenance costs not applied: year2=%v year7=%v", rows[1].TotalCost, rows[6].TotalCost)
	}
	if !mathutil.WithinTolerance(rows[6].EscalatedRate, 428.830605, 1e-6) {
		t.Errorf("year 7 escalated rate = %v", rows[6].EscalatedRate)
	}

	total, err := CalculateFinancials(320, DefaultParams())
	if err != nil {
		t.Fatalf("CalculateFinancials() error = %v", err)
	}
	if !mathutil.WithinTolerance(rows[len(rows)-1].CumulativeProfit, total, 1e-6) {
		t.Errorf("schedule cumulative profit %v does not match CalculateFinancials %v",
			rows[len(rows)-1].CumulativeProfit, total)
	}
}

func TestGenerateScheduleRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		mutate func(*Params)
	}{
		{"Negative rate", -1, func(*Params) {}},
		{"Zero years", 320, func(p *Params) { p.NumYears = 0 }},
		{"Zero utilization", 320, func(p *Params) { p.AUHours = 0 }},
		{"AIC over one hundred", 320, func(p *Params) { p.AIC = 120 }},
		{"Negative HSI cost", 320, func(p *Params) { p.HSICost = -1 }},
		{"Zero overhaul threshold", 320, func(p *Params) { p.OverhaulTSN = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if _, err := BuildSchedule(tt.rate, p); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func BenchmarkCalculateFinancials(b *testing.B) {
	params := DefaultParams()
	for i := 0; i < b.N; i++ {
		if _, err := CalculateFinancials(320, params); err != nil {
			b.Fatal(err)
		}
	}
}
