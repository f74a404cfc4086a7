// Package normality decides whether a sample may be treated as normally
// distributed. Small samples use a Shapiro-Wilk approximation, large ones a
// one-sample Kolmogorov-Smirnov test against N(mean, sd).
package normality

import (
	"fmt"
	"math"

	"gocorr/domain/core"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/descriptive"
	"gocorr/internal/analysis/special"
)

const (
	// LargeSampleThreshold is the smallest n tested with Kolmogorov-Smirnov.
	LargeSampleThreshold = 50
	// Alpha is the level above which a sample is accepted as normal.
	Alpha = 0.05

	minSampleSize = 3
	pFloor        = 0.001
	pCeiling      = 0.999
	ksTerms       = 10
)

// Test picks the procedure by sample size and runs it.
func Test(sample []float64) (stats.NormalityResult, error) {
	if len(sample) < minSampleSize {
		return stats.NormalityResult{N: len(sample)},
			core.NewInsufficientDataError("normality test", len(sample), minSampleSize)
	}
	if len(sample) < LargeSampleThreshold {
		return ShapiroWilk(sample)
	}
	return KolmogorovSmirnov(sample)
}

// ShapiroWilk approximates W with equal weights 1/√n over the extreme pairs
// of the standardized order statistics, and maps ln(1−W) through a
// log-normal fit to a p-value.
func ShapiroWilk(sample []float64) (stats.NormalityResult, error) {
	n := len(sample)
	result := stats.NormalityResult{Test: stats.ShapiroWilk, Reason: "n < 50", N: n}
	if n < minSampleSize {
		return result, core.NewInsufficientDataError("Shapiro-Wilk", n, minSampleSize)
	}

	z, ok := standardize(sample)
	if !ok {
		return constant(result), nil
	}

	weight := 1 / math.Sqrt(float64(n))
	numerator := 0.0
	for i := 0; i < n/2; i++ {
		numerator += weight * (z[n-1-i] - z[i])
	}
	denominator := 0.0
	for _, v := range z {
		denominator += v * v
	}
	w := numerator * numerator / denominator

	var p float64
	if 1-w <= 0 {
		p = pCeiling
	} else {
		ln := math.Log(float64(n))
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		p = 1 - special.NormalCDF((math.Log(1-w)-mu)/sigma)
	}

	result.Statistic = w
	return decide(result, clamp(p)), nil
}

// KolmogorovSmirnov computes D = sup|F_n − Φ| over both sides of each step
// of the empirical CDF and the asymptotic Kolmogorov p-value.
func KolmogorovSmirnov(sample []float64) (stats.NormalityResult, error) {
	n := len(sample)
	result := stats.NormalityResult{Test: stats.KolmogorovSmirnov, Reason: "n >= 50", N: n}
	if n < minSampleSize {
		return result, core.NewInsufficientDataError("Kolmogorov-Smirnov", n, minSampleSize)
	}

	z, ok := standardize(sample)
	if !ok {
		return constant(result), nil
	}

	fn := float64(n)
	d := 0.0
	for i, v := range z {
		cdf := special.NormalCDF(v)
		d = math.Max(d, math.Abs(float64(i+1)/fn-cdf))
		d = math.Max(d, math.Abs(cdf-float64(i)/fn))
	}

	sqrtN := math.Sqrt(fn)
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	sum := 0.0
	for k := 1; k <= ksTerms; k++ {
		fk := float64(k)
		term := math.Exp(-2 * fk * fk * lambda * lambda)
		if k%2 == 0 {
			term = -term
		}
		sum += term
	}

	result.Statistic = d
	return decide(result, clamp(2*sum)), nil
}

// standardize returns the sorted sample as z-scores. ok is false when the
// sample has no spread.
func standardize(sample []float64) ([]float64, bool) {
	summary, err := descriptive.Summarize(sample)
	if err != nil || summary.StdDev == 0 {
		return nil, false
	}

	z := descriptive.Sorted(sample)
	for i := range z {
		z[i] = (z[i] - summary.Mean) / summary.StdDev
	}
	return z, true
}

// constant is the result for a sample with zero variance: never normal.
func constant(result stats.NormalityResult) stats.NormalityResult {
	result.Statistic = 0
	return decide(result, pFloor)
}

func decide(result stats.NormalityResult, p float64) stats.NormalityResult {
	result.PValue = p
	result.IsNormal = p > Alpha
	symbol := result.StatisticSymbol()
	if result.IsNormal {
		result.Decision = fmt.Sprintf("%s = %.4f, p = %.4f > %.2f: normal distribution",
			symbol, result.Statistic, p, Alpha)
	} else {
		result.Decision = fmt.Sprintf("%s = %.4f, p = %.4f ≤ %.2f: non-normal distribution",
			symbol, result.Statistic, p, Alpha)
	}
	return result
}

func clamp(p float64) float64 {
	if math.IsNaN(p) {
		return pFloor
	}
	return math.Min(pCeiling, math.Max(pFloor, p))
}
