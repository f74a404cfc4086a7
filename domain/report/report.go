// Package report holds the persisted record of one complete analysis.
package report

import (
	"time"

	"gocorr/domain/core"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/inference"
)

// Variables names the analyzed pair and the optional study context.
type Variables struct {
	Var1  string `json:"var1"`
	Var2  string `json:"var2"`
	Unit  string `json:"unit,omitempty"`
	Place string `json:"place,omitempty"`
}

// Report bundles everything produced for one pair of variables.
// Dimensions is empty when either variable has no subscales or when the
// dimension analysis failed; the failure is then listed in Warnings.
type Report struct {
	ID          core.ReportID                `json:"id"`
	CreatedAt   time.Time                    `json:"created_at"`
	Variables   Variables                    `json:"variables"`
	Dataset     core.Hash                    `json:"dataset_fingerprint"`
	Descriptive map[string]stats.Summary     `json:"descriptive"`
	Framework   inference.Framework          `json:"framework"`
	Correlation stats.CorrelationResult      `json:"correlation"`
	Hypothesis  stats.HypothesisDecision     `json:"hypothesis"`
	Narrative   inference.Narrative          `json:"narrative"`
	Dimensions  []stats.DimensionCorrelation `json:"dimensions,omitempty"`
	Warnings    []string                     `json:"warnings,omitempty"`
}

// Summary is the listing view of a stored report.
type Summary struct {
	ID          core.ReportID  `json:"id" db:"id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	Var1        string         `json:"var1" db:"variable1"`
	Var2        string         `json:"var2" db:"variable2"`
	Method      stats.Method   `json:"method" db:"method"`
	Coefficient float64        `json:"coefficient" db:"coefficient"`
	PValue      float64        `json:"p_value" db:"p_value"`
	Decision    stats.Decision `json:"decision" db:"decision"`
}

// Summarize extracts the listing view.
func (r *Report) Summarize() Summary {
	return Summary{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Var1:        r.Variables.Var1,
		Var2:        r.Variables.Var2,
		Method:      r.Correlation.Method,
		Coefficient: r.Correlation.Coefficient,
		PValue:      r.Correlation.PValue,
		Decision:    r.Hypothesis.Decision,
	}
}
