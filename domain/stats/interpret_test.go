package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrengthThresholds(t *testing.T) {
	tests := []struct {
		r    float64
		want Strength
	}{
		{0, StrengthNegligible},
		{0.099, StrengthNegligible},
		{0.1, StrengthWeak},
		{-0.29, StrengthWeak},
		{0.3, StrengthModerate},
		{0.5, StrengthModerateStrong},
		{-0.7, StrengthStrong},
		{0.89, StrengthStrong},
		{0.9, StrengthVeryStrong},
		{-1, StrengthVeryStrong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StrengthFor(tt.r), "r=%v", tt.r)
	}
}

func TestSignificanceThresholds(t *testing.T) {
	tests := []struct {
		p    float64
		want Significance
	}{
		{0, HighlySignificant},
		{0.0009, HighlySignificant},
		{0.001, VerySignificant},
		{0.0099, VerySignificant},
		{0.01, Significant},
		{0.049, Significant},
		{0.05, NotSignificant},
		{0.8, NotSignificant},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SignificanceFor(tt.p), "p=%v", tt.p)
	}
}

func TestClassify(t *testing.T) {
	got := Classify(-0.62, 0.004)

	assert.Equal(t, StrengthModerateStrong, got.Strength)
	assert.Equal(t, DirectionNegative, got.Direction)
	assert.Equal(t, VerySignificant, got.Significance)
	assert.InDelta(t, 0.3844, got.SharedVariance, 1e-12)
	assert.Equal(t, "moderate-strong negative correlation, very significant (p < .01)", got.Text)

	assert.Equal(t, DirectionPositive, Classify(0, 1).Direction)
	assert.Equal(t, Classify(0.42, 0.03), Classify(0.42, 0.03))
}
