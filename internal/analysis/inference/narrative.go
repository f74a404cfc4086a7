package inference

import (
	"fmt"
	"math"
	"strings"

	"gocorr/domain/stats"
)

// Narrative is the prose interpretation of one correlation analysis.
type Narrative struct {
	Normality   string `json:"normality"`
	Correlation string `json:"correlation"`
	Hypothesis  string `json:"hypothesis"`
}

// BuildNarrative writes the three report paragraphs for var1 and var2.
func BuildNarrative(var1, var2 string, result stats.CorrelationResult, decision stats.HypothesisDecision) Narrative {
	return Narrative{
		Normality:   normalityParagraph(var1, var2, result),
		Correlation: correlationParagraph(var1, var2, result),
		Hypothesis:  hypothesisParagraph(var1, var2, result, decision),
	}
}

func normalityParagraph(var1, var2 string, result stats.CorrelationResult) string {
	n1, n2 := result.Normality1, result.Normality2
	var b strings.Builder

	fmt.Fprintf(&b, "Normality was assessed with %s (%s) for %s and %s. ", n1.Test, n1.Reason, var1, var2)
	switch {
	case !n1.IsNormal && !n2.IsNormal:
		fmt.Fprintf(&b, "Neither variable is normally distributed (%s: %s=%.4f, p=%.3f; %s: %s=%.4f, p=%.3f), ",
			var1, n1.StatisticSymbol(), n1.Statistic, n1.PValue, var2, n2.StatisticSymbol(), n2.Statistic, n2.PValue)
		b.WriteString("so the non-parametric Spearman coefficient (ρ) was used.")
	case !n1.IsNormal || !n2.IsNormal:
		bad, badName, goodName := n1, var1, var2
		if n1.IsNormal {
			bad, badName, goodName = n2, var2, var1
		}
		fmt.Fprintf(&b, "%s is not normally distributed (%s=%.4f, p=%.3f) while %s is. ",
			badName, bad.StatisticSymbol(), bad.Statistic, bad.PValue, goodName)
		b.WriteString("Since at least one variable departs from normality, the Spearman coefficient (ρ) was used.")
	default:
		fmt.Fprintf(&b, "Both variables are normally distributed (%s: p=%.3f; %s: p=%.3f), ",
			var1, n1.PValue, var2, n2.PValue)
		b.WriteString("so the parametric Pearson coefficient (r) was used.")
	}
	return b.String()
}

func correlationParagraph(var1, var2 string, result stats.CorrelationResult) string {
	in := result.Interpretation
	symbol := result.Method.Symbol()
	var b strings.Builder

	fmt.Fprintf(&b, "The correlation between %s and %s was evaluated (N=%d) with the %s coefficient. ",
		var1, var2, result.N, result.Method)
	fmt.Fprintf(&b, "%s = %.4f indicates a %s %s association", symbol, result.Coefficient, in.Strength, in.Direction)

	switch {
	case result.PValue >= 0.05:
		fmt.Fprintf(&b, ", and p = %.4f (≥ 0.05) shows it is not statistically significant. ", result.PValue)
		fmt.Fprintf(&b, "There is no evidence of a systematic relationship between %s and %s.", var1, var2)
	case result.PValue >= 0.01:
		fmt.Fprintf(&b, " that is significant at the conventional level (p = %.4f < 0.05). ", result.PValue)
		b.WriteString(directionSentence(var1, var2, in.Direction))
	default:
		fmt.Fprintf(&b, " that is highly significant (p = %.4f < 0.01). ", result.PValue)
		b.WriteString(directionSentence(var1, var2, in.Direction))
	}

	fmt.Fprintf(&b, " The effect size is %s: %.1f%% of the variance is shared between the variables.",
		in.Strength, in.SharedVariance*100)
	return b.String()
}

func directionSentence(var1, var2 string, direction stats.Direction) string {
	if direction == stats.DirectionNegative {
		return fmt.Sprintf("Increases in %s are associated with decreases in %s.", var1, var2)
	}
	return fmt.Sprintf("Increases in %s are associated with increases in %s.", var1, var2)
}

func hypothesisParagraph(var1, var2 string, result stats.CorrelationResult, decision stats.HypothesisDecision) string {
	symbol := result.Method.Symbol()
	var b strings.Builder

	fmt.Fprintf(&b, "H0: %s = 0 was tested against H1: %s ≠ 0 at α = %g. ", symbol, symbol, decision.Alpha)
	fmt.Fprintf(&b, "With %s = %.4f and p = %.4f, ", symbol, result.Coefficient, result.PValue)

	if decision.Rejected() {
		fmt.Fprintf(&b, "p < α leads to rejecting H0: the correlation between %s and %s differs from zero in the population. ", var1, var2)
		b.WriteString("Correlation does not imply causation.")
	} else {
		fmt.Fprintf(&b, "p ≥ α does not allow rejecting H0: there is not enough evidence that the correlation between %s and %s differs from zero. ", var1, var2)
		if math.Abs(result.Coefficient) < 0.1 {
			b.WriteString("The coefficient is close to zero.")
		} else {
			b.WriteString("A trend is visible but sampling variability prevents generalizing it.")
		}
	}

	b.WriteString(" ")
	b.WriteString(SampleSizeRecommendation(result.N))
	if !decision.Rejected() && math.Abs(result.Coefficient) > 0.2 {
		b.WriteString(" A study with more statistical power could reveal significance.")
	}
	return b.String()
}

// SampleSizeRecommendation advises on the sample size for future studies.
func SampleSizeRecommendation(n int) string {
	switch {
	case n < 30:
		return fmt.Sprintf("Increase the sample size (N = %d): small samples have little power to detect real effects.", n)
	case n < 100:
		return "Consider a larger sample for a more precise estimate of the population parameter."
	case n < 200:
		return "A larger sample would support more complex multivariate models."
	case n < 500:
		return fmt.Sprintf("The sample (N = %d) gives good power and stable estimates for advanced analyses.", n)
	default:
		return fmt.Sprintf("The sample (N = %d) is very large; watch for trivially small effects reaching significance.", n)
	}
}
