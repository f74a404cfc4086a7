// Package inference turns correlation results into decisions and prose:
// the α-based hypothesis test, dimension-by-dimension correlations, the
// research framework and the narrative paragraphs of a report.
package inference

import (
	"fmt"

	"gocorr/domain/core"
	"gocorr/domain/stats"
)

// DefaultAlpha is the conventional significance level.
const DefaultAlpha = 0.05

// ValidateAlpha rejects significance levels outside the open unit interval.
func ValidateAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return fmt.Errorf("%w: %v", core.ErrInvalidAlpha, alpha)
	}
	return nil
}

// TestHypothesis rejects H0 (ρ = 0) iff p < α. Equality does not reject.
func TestHypothesis(result stats.CorrelationResult, alpha float64) (stats.HypothesisDecision, error) {
	if err := ValidateAlpha(alpha); err != nil {
		return stats.HypothesisDecision{}, err
	}

	decision := stats.HypothesisDecision{Alpha: alpha, PValue: result.PValue}
	if result.PValue < alpha {
		decision.Decision = stats.Reject
		decision.ConclusionH0 = fmt.Sprintf("H0 is rejected (p = %.4f < α = %g)", result.PValue, alpha)
		decision.ConclusionH1 = fmt.Sprintf("There is a statistically significant %s relationship",
			result.Interpretation.Direction)
	} else {
		decision.Decision = stats.FailToReject
		decision.ConclusionH0 = fmt.Sprintf("H0 is not rejected (p = %.4f ≥ α = %g)", result.PValue, alpha)
		decision.ConclusionH1 = "There is not enough evidence of a statistically significant relationship"
	}
	return decision, nil
}
