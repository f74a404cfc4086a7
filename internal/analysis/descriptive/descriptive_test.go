package descriptive

import (
	"errors"
	"math"
	"testing"

	"gocorr/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSummarize(t *testing.T) {
	sample := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	summary, err := Summarize(sample)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.N)
	assert.InDelta(t, 5.0, summary.Mean, 1e-12)
	assert.InDelta(t, 32.0/7.0, summary.Variance, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), summary.StdDev, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0)/math.Sqrt(8), summary.StdErr, 1e-12)
	assert.Equal(t, 2.0, summary.Min)
	assert.Equal(t, 9.0, summary.Max)
	assert.Equal(t, 7.0, summary.Range)
	assert.Equal(t, 4.5, summary.Median)
	assert.InDelta(t, 4.0, summary.Q1, 1e-12)
	assert.InDelta(t, 5.5, summary.Q3, 1e-12)
	assert.InDelta(t, 1.5, summary.IQR, 1e-12)
}

func TestSummarizeMatchesGonum(t *testing.T) {
	sample := []float64{12.1, 9.4, 15.2, 11.8, 10.0, 19.6, 13.3, 8.7, 14.1, 12.9, 30.2}

	summary, err := Summarize(sample)
	require.NoError(t, err)

	assert.InDelta(t, stat.Mean(sample, nil), summary.Mean, 1e-9)
	assert.InDelta(t, stat.Variance(sample, nil), summary.Variance, 1e-9)
	assert.InDelta(t, stat.Skew(sample, nil), summary.Skewness, 1e-9)
	assert.InDelta(t, stat.ExKurtosis(sample, nil), summary.Kurtosis, 1e-9)
}

func TestSummarizeInvariants(t *testing.T) {
	samples := [][]float64{
		{1},
		{3, 3},
		{-1.5, 0, 2.5},
		{10, 20, 30, 40, 50, 60},
		{0.001, 1000, -1000, 7},
	}

	for _, sample := range samples {
		summary, err := Summarize(sample)
		require.NoError(t, err)

		sum := 0.0
		for _, x := range sample {
			sum += x
		}
		assert.InDelta(t, sum/float64(len(sample)), summary.Mean, 1e-9)
		assert.GreaterOrEqual(t, summary.Variance, 0.0)
		assert.LessOrEqual(t, summary.Min, summary.Median)
		assert.LessOrEqual(t, summary.Median, summary.Max)
		assert.InDelta(t, summary.Median, Percentile(Sorted(sample), 50), 1e-12)
	}
}

func TestSummarizeConstantSample(t *testing.T) {
	summary, err := Summarize([]float64{4, 4, 4, 4, 4})
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.Variance)
	assert.Equal(t, 0.0, summary.StdDev)
	assert.Equal(t, 0.0, summary.Skewness)
	assert.Equal(t, 0.0, summary.Kurtosis)
}

func TestSummarizeSingleValue(t *testing.T) {
	summary, err := Summarize([]float64{7})
	require.NoError(t, err)

	assert.Equal(t, 7.0, summary.Mean)
	assert.Equal(t, 0.0, summary.Variance)
	assert.Equal(t, 7.0, summary.Q1)
	assert.Equal(t, 7.0, summary.Q3)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.True(t, errors.Is(err, core.ErrEmptySample))
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	sample := []float64{3, 1, 2}
	_, err := Summarize(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
		{-5, 1},
		{120, 4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(sorted, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestSkewnessSign(t *testing.T) {
	right := []float64{1, 1, 1, 2, 2, 3, 10}
	summary, err := Summarize(right)
	require.NoError(t, err)
	assert.Greater(t, summary.Skewness, 0.0)

	left := []float64{-1, -1, -1, -2, -2, -3, -10}
	summary, err = Summarize(left)
	require.NoError(t, err)
	assert.Less(t, summary.Skewness, 0.0)
}
