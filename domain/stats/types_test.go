package stats

import (
	"errors"
	"testing"

	"gocorr/domain/core"
)

func TestParseSidedness(t *testing.T) {
	tests := []struct {
		input    string
		expected Sidedness
		hasError bool
	}{
		{"", TwoTailed, false},
		{"two-tailed", TwoTailed, false},
		{"Bilateral", TwoTailed, false},
		{" one ", OneTailed, false},
		{"unilateral", OneTailed, false},
		{"three", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSidedness(tt.input)
			if tt.hasError {
				if !errors.Is(err, core.ErrInvalidSidedness) {
					t.Fatalf("expected ErrInvalidSidedness, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSidednessTails(t *testing.T) {
	if OneTailed.Tails() != 1 {
		t.Errorf("one-tailed multiplier should be 1")
	}
	if TwoTailed.Tails() != 2 {
		t.Errorf("two-tailed multiplier should be 2")
	}
}

func TestSymbols(t *testing.T) {
	if MethodPearson.Symbol() != "r" || MethodSpearman.Symbol() != "ρ" {
		t.Error("unexpected coefficient symbols")
	}
	if (NormalityResult{Test: ShapiroWilk}).StatisticSymbol() != "W" {
		t.Error("Shapiro-Wilk statistic is W")
	}
	if (NormalityResult{Test: KolmogorovSmirnov}).StatisticSymbol() != "D" {
		t.Error("Kolmogorov-Smirnov statistic is D")
	}
	if !(HypothesisDecision{Decision: Reject}).Rejected() {
		t.Error("reject decision should report Rejected")
	}
}
