// Package descriptive summarizes one numeric sample.
package descriptive

import (
	"fmt"
	"math"
	"sort"

	"gocorr/domain/core"
	"gocorr/domain/stats"

	mstats "github.com/montanaflynn/stats"
)

// Summarize computes the descriptive statistics of a sample.
// The sample is not modified.
func Summarize(sample []float64) (stats.Summary, error) {
	summary := stats.Summary{N: len(sample)}
	if len(sample) == 0 {
		return summary, core.ErrEmptySample
	}

	mean, err := mstats.Mean(sample)
	if err != nil {
		return summary, fmt.Errorf("mean: %w", err)
	}

	// A single observation has no spread.
	variance := 0.0
	if len(sample) > 1 {
		variance, err = mstats.SampleVariance(sample)
		if err != nil {
			return summary, fmt.Errorf("variance: %w", err)
		}
	}

	min, err := mstats.Min(sample)
	if err != nil {
		return summary, fmt.Errorf("min: %w", err)
	}
	max, err := mstats.Max(sample)
	if err != nil {
		return summary, fmt.Errorf("max: %w", err)
	}
	median, err := mstats.Median(sample)
	if err != nil {
		return summary, fmt.Errorf("median: %w", err)
	}

	sorted := Sorted(sample)
	stdDev := math.Sqrt(variance)

	summary.Mean = mean
	summary.Variance = variance
	summary.StdDev = stdDev
	summary.StdErr = stdDev / math.Sqrt(float64(len(sample)))
	summary.Min = min
	summary.Max = max
	summary.Range = max - min
	summary.Median = median
	summary.Q1 = Percentile(sorted, 25)
	summary.Q3 = Percentile(sorted, 75)
	summary.IQR = summary.Q3 - summary.Q1
	summary.Skewness = Skewness(sample, mean, stdDev)
	summary.Kurtosis = Kurtosis(sample, mean, stdDev)

	return summary, nil
}

// Sorted returns an ascending copy of the sample.
func Sorted(sample []float64) []float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)
	return sorted
}

// Percentile interpolates linearly between the order statistics around index
// p/100·(n−1). sorted must be ascending; an empty slice yields 0.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	index := p / 100 * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Skewness is the bias-corrected sample skewness n/((n−1)(n−2))·Σz³.
// Constant samples and n < 3 give 0.
func Skewness(sample []float64, mean, stdDev float64) float64 {
	if len(sample) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(sample))
	sumCubed := 0.0
	for _, x := range sample {
		z := (x - mean) / stdDev
		sumCubed += z * z * z
	}
	return n / ((n - 1) * (n - 2)) * sumCubed
}

// Kurtosis is the bias-corrected sample excess kurtosis.
// Constant samples and n < 4 give 0.
func Kurtosis(sample []float64, mean, stdDev float64) float64 {
	if len(sample) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(sample))
	sumFourth := 0.0
	for _, x := range sample {
		z := (x - mean) / stdDev
		sumFourth += z * z * z * z
	}

	term := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3)) * sumFourth
	correction := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return term - correction
}
