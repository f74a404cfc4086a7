// Package correlation measures the association between two paired samples,
// choosing Pearson or Spearman from the normality of both samples.
package correlation

import (
	"fmt"
	"math"
	"sort"

	"gocorr/domain/core"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/descriptive"
	"gocorr/internal/analysis/normality"
	"gocorr/internal/analysis/special"
)

const (
	minPairs = 3
	// spearmanNormalThreshold is the n above which Spearman uses the normal
	// approximation instead of the t distribution.
	spearmanNormalThreshold = 10
	// DefaultConfidenceLevel is used for the interval attached by Correlate.
	DefaultConfidenceLevel = 0.95
)

// Correlate runs the whole pipeline on two equal-length samples: normality on
// each, Pearson when both are normal and Spearman otherwise, then the
// p-value, interpretation and a Fisher-z confidence interval. An empty
// sidedness means two-tailed; any other value than the two known ones fails
// with core.ErrInvalidSidedness.
func Correlate(x, y []float64, sidedness stats.Sidedness) (stats.CorrelationResult, error) {
	switch sidedness {
	case "":
		sidedness = stats.TwoTailed
	case stats.OneTailed, stats.TwoTailed:
	default:
		return stats.CorrelationResult{}, fmt.Errorf("%w: %q", core.ErrInvalidSidedness, sidedness)
	}
	result := stats.CorrelationResult{N: len(x), Sidedness: sidedness}

	if len(x) != len(y) {
		return result, core.NewLengthMismatchError(len(x), len(y))
	}
	if len(x) < minPairs {
		return result, core.NewInsufficientDataError("correlation", len(x), minPairs)
	}

	n1, err := normality.Test(x)
	if err != nil {
		return result, fmt.Errorf("normality of first sample: %w", err)
	}
	n2, err := normality.Test(y)
	if err != nil {
		return result, fmt.Errorf("normality of second sample: %w", err)
	}
	result.Normality1 = n1
	result.Normality2 = n2

	if n1.IsNormal && n2.IsNormal {
		result.Method = stats.MethodPearson
		r, ok := pearson(x, y)
		result.Coefficient = r
		result.PValue = 1
		if ok {
			result.PValue = PearsonPValue(r, len(x), sidedness)
		}
	} else {
		result.Method = stats.MethodSpearman
		rho, ok := pearson(Ranks(x), Ranks(y))
		result.Coefficient = rho
		result.PValue = 1
		if ok {
			result.PValue = SpearmanPValue(rho, len(x), sidedness)
		}
	}

	result.Interpretation = stats.Classify(result.Coefficient, result.PValue)
	result.ConfidenceInterval = ConfidenceInterval(result.Coefficient, len(x), DefaultConfidenceLevel)
	return result, nil
}

// Pearson returns the product-moment correlation coefficient.
// Samples with zero variance yield 0.
func Pearson(x, y []float64) float64 {
	r, _ := pearson(x, y)
	return r
}

// Spearman returns the rank correlation coefficient: Pearson on average ranks.
func Spearman(x, y []float64) float64 {
	r, _ := pearson(Ranks(x), Ranks(y))
	return r
}

// pearson computes r from the sample covariance and standard deviations.
// ok is false when either sample has no spread or the lengths differ.
func pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, false
	}

	sx, err := descriptive.Summarize(x)
	if err != nil {
		return 0, false
	}
	sy, err := descriptive.Summarize(y)
	if err != nil {
		return 0, false
	}
	if sx.StdDev == 0 || sy.StdDev == 0 {
		return 0, false
	}

	covariance := 0.0
	for i := range x {
		covariance += (x[i] - sx.Mean) * (y[i] - sy.Mean)
	}
	covariance /= float64(n - 1)

	r := covariance / (sx.StdDev * sy.StdDev)
	return math.Max(-1, math.Min(1, r)), true
}

// Ranks assigns 1-based ranks in ascending order; tied values share the mean
// of the ranks they span.
func Ranks(data []float64) []float64 {
	n := len(data)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	type pair struct {
		value float64
		index int
	}
	pairs := make([]pair, n)
	for i, v := range data {
		pairs[i] = pair{value: v, index: i}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avg
		}
		i = j
	}
	return ranks
}

// PearsonPValue tests r against zero with the t statistic on n−2 degrees of
// freedom: p = I_{df/(df+t²)}(df/2, ½), doubled for two-tailed tests and
// capped at 1. A perfect correlation has p = 0.
func PearsonPValue(r float64, n int, sidedness stats.Sidedness) float64 {
	if n < minPairs {
		return 1
	}
	denominator := 1 - r*r
	if denominator <= 0 {
		return 0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/denominator)
	p := special.IncompleteBeta(df/(df+t*t), df/2, 0.5)
	return math.Min(1, p*sidedness.Tails())
}

// SpearmanPValue uses z = ρ√(n−1) for n > 10 and falls back to the Pearson t
// test on ρ for small samples.
func SpearmanPValue(rho float64, n int, sidedness stats.Sidedness) float64 {
	if n <= spearmanNormalThreshold {
		return PearsonPValue(rho, n, sidedness)
	}

	z := rho * math.Sqrt(float64(n-1))
	p := (1 - special.NormalCDF(math.Abs(z))) * sidedness.Tails()
	return math.Min(1, p)
}

// ConfidenceInterval is the Fisher-z interval for a correlation coefficient.
// With n ≤ 3 the interval is uninformative and spans [−1, 1].
func ConfidenceInterval(r float64, n int, level float64) stats.Interval {
	interval := stats.Interval{Level: level, Lower: -1, Upper: 1}
	if n <= 3 || level <= 0 || level >= 1 {
		return interval
	}
	if math.Abs(r) >= 1 {
		interval.Lower, interval.Upper = r, r
		return interval
	}

	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(n-3))
	crit := special.InvNormalCDF(1 - (1-level)/2)
	interval.Lower = math.Tanh(z - crit*se)
	interval.Upper = math.Tanh(z + crit*se)
	return interval
}
