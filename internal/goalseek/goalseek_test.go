package goalseek

import (
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/lease-forecast/internal/runout"
	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/datetime"
	"github.com/iwvelando/lease-forecast/pkg/format"
	"github.com/iwvelando/lease-forecast/pkg/lease"
	"github.com/iwvelando/lease-forecast/pkg/mathutil"
	"github.com/iwvelando/lease-forecast/pkg/optimization"
	"github.com/iwvelando/lease-forecast/pkg/rootfind"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func runoutParams() runout.Params {
	engine := func(id string) runout.Engine {
		return runout.Engine{
			ID:                      id,
			WarrantyExpDate:         datetime.MustParseDate("2025-10-31"),
			FirstRunRateSwitchDate:  datetime.MustParseDate("2026-11-01"),
			SecondRunRateSwitchDate: datetime.MustParseDate("2027-05-01"),
			ThirdRunRateSwitchDate:  datetime.MustParseDate("2028-07-01"),
		}
	}
	return runout.Params{
		ContractStartDate:  datetime.MustParseDate("2022-01-14"),
		ContractEndDate:    datetime.MustParseDate("2034-02-14"),
		AUHours:            480,
		Rates:              runout.Rates{Warranty: 243.6, FirstRun: 255.13, SecondRun: 255.13, ThirdRun: 255.13},
		Fees:               runout.Fees{Management: 15, AIC: 20, TrustLoad: 2.98},
		BuyIn:              1352291.05,
		RateEscalation:     8.75,
		FlightHoursMinimum: 150,
		DaysInYear:         constants.DefaultDaysInYear,
		DaysInMonth:        constants.DefaultDaysInMonth,
		MinPeriodDays:      constants.DefaultMinPeriodDays,
		Engines:            []runout.Engine{engine("1085718"), engine("1085719")},
	}
}

func TestSeekLeaseRate(t *testing.T) {
	methods := []string{constants.MethodSecant, constants.MethodBrent, constants.MethodNewton}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			summary, err := SeekLeaseRate(zap.NewNop(), lease.DefaultParams(), Settings{
				Name:         "reference",
				Method:       method,
				Target:       3000000,
				InitialGuess: constants.DefaultRate,
			})
			if err != nil {
				t.Fatalf("SeekLeaseRate() error = %v", err)
			}
			if !summary.Converged {
				t.Errorf("expected convergence, got %+v", summary)
			}
			if !mathutil.WithinTolerance(summary.Value, 505.93820432563246, 1e-6) {
				t.Errorf("solved rate = %.10f, expected 505.9382043256", summary.Value)
			}

			profit, err := lease.CalculateFinancials(summary.Value, lease.DefaultParams())
			if err != nil {
				t.Fatalf("CalculateFinancials() error = %v", err)
			}
			if !mathutil.WithinTolerance(profit, 3000000, constants.DefaultTolerance) {
				t.Errorf("solved rate reproduces %.10f, expected 3000000", profit)
			}
			if !mathutil.WithinTolerance(summary.Achieved, profit, 1e-9) {
				t.Errorf("achieved %v does not match recomputed %v", summary.Achieved, profit)
			}

			if summary.Scope != optimization.ScopeLease || summary.Field != FieldRate || summary.Method != method {
				t.Errorf("unexpected summary labels %+v", summary)
			}
			if summary.Original != constants.DefaultRate || summary.OriginalDisplay != "320.0000" {
				t.Errorf("original = %v (%s)", summary.Original, summary.OriginalDisplay)
			}
		})
	}
}

func TestSeekLeaseRateFromZero(t *testing.T) {
	summary, err := SeekLeaseRate(nil, lease.DefaultParams(), Settings{Target: 3000000})
	if err != nil {
		t.Fatalf("SeekLeaseRate() error = %v", err)
	}
	if !mathutil.WithinTolerance(summary.Value, 505.93820432563246, 1e-6) {
		t.Errorf("solved rate = %v", summary.Value)
	}
}

func TestSeekLeaseRateStartingGuesses(t *testing.T) {
	for _, guess := range []float64{1, 50, 1000, 5000} {
		t.Run(format.Rate(guess), func(t *testing.T) {
			summary, err := SeekLeaseRate(zap.NewNop(), lease.DefaultParams(), Settings{
				Target:       3000000,
				InitialGuess: guess,
			})
			if err != nil {
				t.Fatalf("SeekLeaseRate() error = %v", err)
			}
			profit, err := lease.CalculateFinancials(summary.Value, lease.DefaultParams())
			if err != nil {
				t.Fatalf("CalculateFinancials() error = %v", err)
			}
			if !mathutil.WithinTolerance(profit, 3000000, constants.DefaultTolerance) {
				t.Errorf("rate %v reproduces %.10f, expected 3000000", summary.Value, profit)
			}
		})
	}
}

func TestSeekLogsSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	summary, err := SeekRunoutRate(zap.New(core), runoutParams(), Settings{Name: "runout", Target: 5000000})
	if err != nil {
		t.Fatalf("SeekRunoutRate() error = %v", err)
	}

	entries := logs.FilterMessage("goal seek solved").All()
	if len(entries) != 1 {
		t.Fatalf("expected one solved entry, got %d", len(entries))
	}
	got, ok := entries[0].ContextMap()["summary"]
	if !ok {
		t.Fatal("solved entry has no summary field")
	}
	if got != summary.String() {
		t.Errorf("summary field = %q, expected %q", got, summary.String())
	}
	if !strings.HasPrefix(summary.String(), "runout runout: firstRunRate 255.1300 -> 400.4495") {
		t.Errorf("unexpected summary %q", summary.String())
	}
}

func TestSeekLeaseRateNoSignChange(t *testing.T) {
	_, err := SeekLeaseRate(nil, lease.DefaultParams(), Settings{
		Method: constants.MethodBrent,
		Target: 3000000,
		Lower:  1,
		Upper:  100,
	})
	if !errors.Is(err, rootfind.ErrNoSignChange) {
		t.Errorf("expected ErrNoSignChange, got %v", err)
	}
}

func TestSeekRunoutRate(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		kpi       string
		parameter string
		target    float64
		expected  float64
	}{
		{"First run rate to total revenue", constants.MethodSecant, runout.KPICumulativeTotalRevenue, runout.ParamFirstRunRate, 5000000, 400.449539388489},
		{"Third run rate by Brent", constants.MethodBrent, runout.KPICumulativeTotalRevenue, runout.ParamThirdRunRate, 5000000, 270.14238627323545},
		{"Warranty rate by Newton", constants.MethodNewton, runout.KPICumulativeTotalRevenue, runout.ParamWarrantyRate, 5000000, 290.2650844767236},
		{"First run rate to trust revenue", constants.MethodSecant, runout.KPICumulativeTrustRevenue, runout.ParamFirstRunRate, 2000000, 491.22473974563},
		{"First run rate to FH revenue", constants.MethodSecant, runout.KPITotalFHRevenue, runout.ParamFirstRunRate, 5000000, 400.449539388489},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := runoutParams()
			summary, err := SeekRunoutRate(zap.NewNop(), params, Settings{
				Name:      "runout",
				Method:    tt.method,
				Target:    tt.target,
				KPI:       tt.kpi,
				Parameter: tt.parameter,
			})
			if err != nil {
				t.Fatalf("SeekRunoutRate() error = %v", err)
			}
			if !mathutil.WithinTolerance(summary.Value, tt.expected, 1e-6) {
				t.Errorf("solved %s = %.10f, expected %.10f", tt.parameter, summary.Value, tt.expected)
			}
			if !mathutil.WithinTolerance(summary.Achieved, tt.target, constants.DefaultTolerance) {
				t.Errorf("achieved %s = %v, expected %v", tt.kpi, summary.Achieved, tt.target)
			}

			original, _ := params.Rate(tt.parameter)
			if summary.Original != original {
				t.Errorf("original = %v, expected %v", summary.Original, original)
			}
			if summary.Scope != optimization.ScopeRunout || summary.KPI != tt.kpi || summary.Field != tt.parameter {
				t.Errorf("unexpected summary labels %+v", summary)
			}
		})
	}
}

func TestSeekRunoutRateDefaults(t *testing.T) {
	params := runoutParams()
	params.Rates.FirstRun = 0

	summary, err := SeekRunoutRate(nil, params, Settings{Target: 5000000})
	if err != nil {
		t.Fatalf("SeekRunoutRate() error = %v", err)
	}
	if summary.KPI != runout.KPICumulativeTotalRevenue || summary.Field != runout.ParamFirstRunRate {
		t.Errorf("expected default KPI and parameter, got %s / %s", summary.KPI, summary.Field)
	}
	if summary.Original != 243.6 {
		t.Errorf("expected the search to start from the inherited warranty rate, got %v", summary.Original)
	}
}

func TestSeekRunoutRateRejectsUnknownNames(t *testing.T) {
	if _, err := SeekRunoutRate(nil, runoutParams(), Settings{Target: 1, KPI: "profit"}); err == nil {
		t.Error("expected error for unknown KPI")
	}
	if _, err := SeekRunoutRate(nil, runoutParams(), Settings{Target: 1, Parameter: "buyIn"}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"Defaults", Settings{}, false},
		{"Alias", Settings{Method: "BrentQ"}, false},
		{"Unknown method", Settings{Method: "bisection-search"}, true},
		{"Inverted bracket", Settings{Method: constants.MethodBrent, Lower: 10, Upper: 5}, true},
		{"Negative guess", Settings{InitialGuess: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanonicalMethod(t *testing.T) {
	tests := map[string]string{
		"":               constants.MethodSecant,
		"Secant":         constants.MethodSecant,
		" brentq ":       constants.MethodBrent,
		"Newton-Raphson": constants.MethodNewton,
		"Other":          "other",
	}
	for input, expected := range tests {
		if got := CanonicalMethod(input); got != expected {
			t.Errorf("CanonicalMethod(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func BenchmarkSeekLeaseRate(b *testing.B) {
	params := lease.DefaultParams()
	settings := Settings{Target: 3000000, InitialGuess: constants.DefaultRate}
	for i := 0; i < b.N; i++ {
		if _, err := SeekLeaseRate(nil, params, settings); err != nil {
			b.Fatal(err)
		}
	}
}
