package app

import (
	"context"
	"fmt"
	"time"

	"gocorr/domain/core"
	"gocorr/domain/report"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/inference"
)

// ReportRequest names the variable pair of a report and its study context.
type ReportRequest struct {
	Var1      string          `json:"var1"`
	Var2      string          `json:"var2"`
	Unit      string          `json:"unit,omitempty"`
	Place     string          `json:"place,omitempty"`
	Sidedness stats.Sidedness `json:"sidedness,omitempty"`
}

// BuildReport runs descriptives, correlation, the hypothesis test and, when
// both variables have subscales, the dimension analysis. A failing dimension
// analysis is reported as a warning instead of failing the report. The
// report is saved when a repository is configured.
func (s *AnalysisService) BuildReport(ctx context.Context, req ReportRequest) (*report.Report, error) {
	state, err := s.pairState(req.Var1, req.Var2)
	if err != nil {
		return nil, err
	}
	sidedness := s.resolveSidedness(req.Sidedness)
	alpha := state.framework.SignificanceLevel

	result, err := s.correlate(state.table, req.Var1, req.Var2, sidedness, alpha)
	if err != nil {
		return nil, err
	}
	decision, err := inference.TestHypothesis(result, alpha)
	if err != nil {
		return nil, err
	}

	rep := &report.Report{
		ID:          core.NewReportID(),
		CreatedAt:   time.Now().UTC(),
		Variables:   report.Variables{Var1: req.Var1, Var2: req.Var2, Unit: req.Unit, Place: req.Place},
		Dataset:     state.table.Fingerprint(),
		Descriptive: make(map[string]stats.Summary, 2),
		Correlation: result,
		Hypothesis:  decision,
		Narrative:   inference.BuildNarrative(req.Var1, req.Var2, result, decision),
	}

	for _, column := range []string{req.Var1, req.Var2} {
		summary, err := describe(state.table, column)
		if err != nil {
			return nil, err
		}
		rep.Descriptive[column] = summary
	}

	rep.Framework = inference.BuildFramework(inference.FrameworkInput{
		Var1:       req.Var1,
		Var2:       req.Var2,
		Unit:       req.Unit,
		Place:      req.Place,
		Dimension1: state.dims1.Names(),
		Dimension2: state.dims2.Names(),
	}, state.framework)

	if len(state.dims1) > 0 && len(state.dims2) > 0 {
		dimensions, err := s.correlateDimensions(ctx, state, sidedness)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			warning := fmt.Sprintf("dimension analysis failed: %v", err)
			s.logger.Warn("Report %s: %s", rep.ID, warning)
			rep.Warnings = append(rep.Warnings, warning)
		} else {
			rep.Dimensions = dimensions
		}
	}

	if s.reports != nil {
		if err := s.reports.Save(ctx, rep); err != nil {
			s.logger.Error("Failed to save report %s: %v", rep.ID, err)
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	s.logger.Info("Report %s built for %s and %s on dataset %s (%s, %s)", rep.ID, req.Var1, req.Var2, rep.Dataset.Short(), result.Method, decision.Decision)
	return rep, nil
}

// Report fetches a stored report.
func (s *AnalysisService) Report(ctx context.Context, id core.ReportID) (*report.Report, error) {
	if s.reports == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}
	return s.reports.Get(ctx, id)
}

// Reports lists stored report summaries, newest first.
func (s *AnalysisService) Reports(ctx context.Context, limit int) ([]report.Summary, error) {
	if s.reports == nil {
		return []report.Summary{}, nil
	}
	return s.reports.List(ctx, limit)
}
