package stats

import (
	"fmt"
	"math"
)

// Classify labels a coefficient and its p-value. It is a pure function of
// its inputs; r = 0 counts as positive.
func Classify(r, p float64) Interpretation {
	direction := DirectionPositive
	if r < 0 {
		direction = DirectionNegative
	}

	strength := StrengthFor(r)
	significance := SignificanceFor(p)

	return Interpretation{
		Strength:       strength,
		Direction:      direction,
		Significance:   significance,
		SharedVariance: r * r,
		Text:           fmt.Sprintf("%s %s correlation, %s (%s)", strength, direction, significance, significance.Bound()),
	}
}

// StrengthFor maps |r| onto the ordinal strength scale.
func StrengthFor(r float64) Strength {
	abs := math.Abs(r)
	switch {
	case abs < 0.1:
		return StrengthNegligible
	case abs < 0.3:
		return StrengthWeak
	case abs < 0.5:
		return StrengthModerate
	case abs < 0.7:
		return StrengthModerateStrong
	case abs < 0.9:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// SignificanceFor maps a p-value onto the conventional significance labels.
func SignificanceFor(p float64) Significance {
	switch {
	case p < 0.001:
		return HighlySignificant
	case p < 0.01:
		return VerySignificant
	case p < 0.05:
		return Significant
	default:
		return NotSignificant
	}
}

// Bound is the p-value bound the label stands for.
func (s Significance) Bound() string {
	switch s {
	case HighlySignificant:
		return "p < .001"
	case VerySignificant:
		return "p < .01"
	case Significant:
		return "p < .05"
	default:
		return "p ≥ .05"
	}
}
