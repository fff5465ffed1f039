package mathutil

import (
	"math"
	"testing"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Equal values", 1.5, 1.5, 0, true},
		{"Inside tolerance", 100.0, 100.005, 0.01, true},
		{"Outside tolerance", 100.0, 100.02, 0.01, false},
		{"Symmetric", 100.02, 100.0, 0.01, false},
		{"Tiny tolerance", 3000000, 3000000 + 1e-9, 1e-8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1e300) {
		t.Error("expected 1e300 to be finite")
	}
	if IsFinite(math.NaN()) {
		t.Error("expected NaN to be non-finite")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("expected -Inf to be non-finite")
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Ten percent", 144000, 10, 14400},
		{"Fifteen percent", 1000, 15, 150},
		{"Zero percent", 1000, 0, 0},
		{"Hundred percent", 1000, 100, 1000},
		{"Fractional percent", 10000, 2.98, 298},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPercentage(tt.value, tt.percentage)
			if !WithinTolerance(got, tt.expected, 1e-9) {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, got, tt.expected)
			}
		})
	}
}

func TestComplement(t *testing.T) {
	if got := Complement(15); !WithinTolerance(got, 0.85, 1e-12) {
		t.Errorf("Complement(15) = %v, expected 0.85", got)
	}
	if got := Complement(0); got != 1 {
		t.Errorf("Complement(0) = %v, expected 1", got)
	}
}

func TestEscalationFactor(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		periods  int
		expected float64
	}{
		{"No periods", 8.75, 0, 1},
		{"One period", 8.75, 1, 1.0875},
		{"Eleven periods", 8.75, 11, 2.51606537898244},
		{"Five percent nine periods", 5, 9, 1.5513282159785162},
		{"Zero rate", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscalationFactor(tt.rate, tt.periods)
			if !WithinTolerance(got, tt.expected, 1e-10) {
				t.Errorf("EscalationFactor(%v, %d) = %v, expected %v", tt.rate, tt.periods, got, tt.expected)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	if got := NonNegative(-4.5); got != 0 {
		t.Errorf("NonNegative(-4.5) = %v, expected 0", got)
	}
	if got := NonNegative(4.5); got != 4.5 {
		t.Errorf("NonNegative(4.5) = %v, expected 4.5", got)
	}
}
