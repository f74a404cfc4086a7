package stats

import (
	"fmt"
	"strings"

	"gocorr/domain/core"
)

// ============================================================================
// TEST CONFIGURATION
// ============================================================================

// Sidedness selects between one- and two-tailed significance tests.
type Sidedness string

const (
	OneTailed Sidedness = "one-tailed"
	TwoTailed Sidedness = "two-tailed"
)

// ParseSidedness accepts the canonical names plus the short forms used by the
// CLI and HTTP clients. An empty string means two-tailed.
func ParseSidedness(s string) (Sidedness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "two-tailed", "two", "bilateral", "2":
		return TwoTailed, nil
	case "one-tailed", "one", "unilateral", "1":
		return OneTailed, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidSidedness, s)
}

// Tails returns the multiplier applied to a single-tail probability.
func (s Sidedness) Tails() float64 {
	if s == OneTailed {
		return 1
	}
	return 2
}

// Method is the correlation coefficient used for a variable pair.
type Method string

const (
	MethodPearson  Method = "Pearson"
	MethodSpearman Method = "Spearman"
)

// Symbol is the conventional letter for the coefficient.
func (m Method) Symbol() string {
	if m == MethodPearson {
		return "r"
	}
	return "ρ"
}

// NormalityTest names the procedure chosen for a sample.
type NormalityTest string

const (
	ShapiroWilk       NormalityTest = "Shapiro-Wilk"
	KolmogorovSmirnov NormalityTest = "Kolmogorov-Smirnov"
)

// ============================================================================
// RESULTS
// ============================================================================

// Summary holds the descriptive statistics of one sample.
// Skewness and Kurtosis are 0 for constant samples and for samples too small
// for their bias corrections (n < 3 and n < 4 respectively).
type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	StdErr   float64 `json:"std_err"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Median   float64 `json:"median"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis, 0 for a normal distribution
}

// NormalityResult is the outcome of a normality test on one sample.
type NormalityResult struct {
	Statistic float64       `json:"statistic"`
	PValue    float64       `json:"p_value"`
	Test      NormalityTest `json:"test"`
	Reason    string        `json:"reason"`
	N         int           `json:"n"`
	IsNormal  bool          `json:"is_normal"`
	Decision  string        `json:"decision"`
}

// StatisticSymbol is "W" for Shapiro-Wilk and "D" for Kolmogorov-Smirnov.
func (r NormalityResult) StatisticSymbol() string {
	if r.Test == KolmogorovSmirnov {
		return "D"
	}
	return "W"
}

// Strength is the ordinal magnitude of |r|.
type Strength string

const (
	StrengthNegligible     Strength = "negligible"
	StrengthWeak           Strength = "weak"
	StrengthModerate       Strength = "moderate"
	StrengthModerateStrong Strength = "moderate-strong"
	StrengthStrong         Strength = "strong"
	StrengthVeryStrong     Strength = "very strong"
)

// Direction is the sign of the coefficient. Zero counts as positive.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// Significance is the ordinal label of a p-value.
type Significance string

const (
	HighlySignificant Significance = "highly significant"
	VerySignificant   Significance = "very significant"
	Significant       Significance = "significant"
	NotSignificant    Significance = "not significant"
)

// Interpretation classifies a (coefficient, p-value) pair.
type Interpretation struct {
	Strength       Strength     `json:"strength"`
	Direction      Direction    `json:"direction"`
	Significance   Significance `json:"significance"`
	SharedVariance float64      `json:"shared_variance"` // r², fraction of variance in common
	Text           string       `json:"text"`
}

// Interval is a closed confidence interval.
type Interval struct {
	Level float64 `json:"level"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// CorrelationResult is the outcome of the full pipeline on two samples.
// INVARIANT: Method is Pearson iff Normality1.IsNormal && Normality2.IsNormal.
type CorrelationResult struct {
	Coefficient        float64         `json:"coefficient"`
	PValue             float64         `json:"p_value"`
	N                  int             `json:"n"`
	Method             Method          `json:"method"`
	Sidedness          Sidedness       `json:"sidedness"`
	Normality1         NormalityResult `json:"normality1"`
	Normality2         NormalityResult `json:"normality2"`
	Interpretation     Interpretation  `json:"interpretation"`
	ConfidenceInterval Interval        `json:"confidence_interval"`
}

// Decision is the outcome of a significance test.
type Decision string

const (
	Reject       Decision = "reject"
	FailToReject Decision = "fail-to-reject"
)

// HypothesisDecision is computed on demand from a CorrelationResult and α.
type HypothesisDecision struct {
	Alpha        float64  `json:"alpha"`
	PValue       float64  `json:"p_value"`
	Decision     Decision `json:"decision"`
	ConclusionH0 string   `json:"conclusion_h0"`
	ConclusionH1 string   `json:"conclusion_h1"`
}

// Rejected reports whether the null hypothesis was rejected.
func (d HypothesisDecision) Rejected() bool {
	return d.Decision == Reject
}

// DimensionCorrelation is the correlation between two subscale totals.
type DimensionCorrelation struct {
	Dimension1 string   `json:"dimension1"`
	Dimension2 string   `json:"dimension2"`
	Items1     []string `json:"items1"`
	Items2     []string `json:"items2"`
	CorrelationResult
}
