package app

import (
	"context"
	"fmt"
	"sync"

	"gocorr/adapters/datareadiness/coercer"
	"gocorr/adapters/datareadiness/profiler"
	"gocorr/domain/core"
	"gocorr/domain/dataset"
	"gocorr/domain/stats"
	"gocorr/internal"
	"gocorr/internal/analysis/correlation"
	"gocorr/internal/analysis/descriptive"
	"gocorr/internal/analysis/inference"
	"gocorr/internal/analysis/normality"
	"gocorr/internal/config"
	"gocorr/ports"
)

// AnalysisService is the engine's external interface. It holds the loaded
// table, the per-variable dimension configuration and the study framework.
// All methods are safe for concurrent use; analyses work on a snapshot of
// the state taken under the read lock.
type AnalysisService struct {
	mu         sync.RWMutex
	table      *dataset.Table
	dimensions map[string]dataset.DimensionSet
	framework  inference.FrameworkConfig

	sidedness stats.Sidedness
	workers   int
	coercer   *coercer.TypeCoercer
	reports   ports.ReportRepository
	logger    *internal.Logger
}

// NewAnalysisService creates a service with the given defaults. reports may be
// nil, in which case BuildReport does not persist anything.
func NewAnalysisService(cfg config.AnalysisConfig, reports ports.ReportRepository, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	sidedness := cfg.Sidedness
	if sidedness == "" {
		sidedness = stats.TwoTailed
	}
	framework := inference.DefaultFrameworkConfig()
	if cfg.SignificanceLevel > 0 {
		framework.SignificanceLevel = cfg.SignificanceLevel
	}
	return &AnalysisService{
		dimensions: make(map[string]dataset.DimensionSet),
		framework:  framework,
		sidedness:  sidedness,
		workers:    cfg.DimensionWorkers,
		coercer:    coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
		reports:    reports,
		logger:     logger,
	}
}

// ============================================================================
// DATASET
// ============================================================================

// LoadDataset replaces the loaded table. Dimension configuration is kept.
func (s *AnalysisService) LoadDataset(table *dataset.Table) error {
	if table == nil || len(table.Rows) == 0 {
		return core.ErrEmptyDataset
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.logger.Info("Dataset loaded: %d rows, %d columns", len(table.Rows), len(table.Columns))
	return nil
}

// LoadRecords loads decoded JSON-like records, coercing every value.
func (s *AnalysisService) LoadRecords(records []map[string]interface{}) error {
	if len(records) == 0 {
		return core.ErrEmptyDataset
	}
	return s.LoadDataset(s.coercer.TableFromRecords(records))
}

// ClearDataset forgets the loaded table.
func (s *AnalysisService) ClearDataset() {
	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

func (s *AnalysisService) snapshot() (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, core.ErrDatasetNotLoaded
	}
	return s.table, nil
}

// Table returns the loaded table.
func (s *AnalysisService) Table() (*dataset.Table, error) {
	return s.snapshot()
}

// Columns lists the loaded columns in header order.
func (s *AnalysisService) Columns() ([]string, error) {
	table, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), table.Columns...), nil
}

// NumericColumns lists the columns holding at least one number.
func (s *AnalysisService) NumericColumns() ([]string, error) {
	table, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return table.NumericColumns(), nil
}

// Profile counts the cell kinds of every column.
func (s *AnalysisService) Profile() ([]profiler.ColumnProfile, error) {
	table, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return profiler.ProfileTable(table), nil
}

// ExtractNumericColumn returns the numeric values of a column in row order.
func (s *AnalysisService) ExtractNumericColumn(name string) ([]float64, error) {
	table, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return extract(table, name)
}

func extract(table *dataset.Table, name string) ([]float64, error) {
	if !table.HasColumn(name) {
		return nil, core.NewColumnNotFoundError(name)
	}
	return table.NumericColumn(name), nil
}

// ============================================================================
// DIMENSIONS
// ============================================================================

// ConfigureDimensions sets the subscales of a variable. The returned warnings
// name items that are not columns of the loaded table; they are not errors
// because the table may be loaded or replaced later.
func (s *AnalysisService) ConfigureDimensions(variable string, dims dataset.DimensionSet) ([]string, error) {
	if err := dims.Validate(variable); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dimensions[variable] = dims
	table := s.table
	s.mu.Unlock()

	var warnings []string
	if table != nil {
		for _, item := range dims.UnknownItems(table) {
			w := fmt.Sprintf("item %q of %s is not a dataset column and counts as 0", item, variable)
			s.logger.Warn("%s", w)
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}

// ParseDimensions configures a variable from the "Dim:a,b;Dim2:c" notation.
func (s *AnalysisService) ParseDimensions(variable, spec string) ([]string, error) {
	return s.ConfigureDimensions(variable, dataset.ParseDimensionSet(spec))
}

// Dimensions returns the subscales configured for a variable.
func (s *AnalysisService) Dimensions(variable string) (dataset.DimensionSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dims, ok := s.dimensions[variable]
	return dims, ok
}

// ============================================================================
// ANALYSIS
// ============================================================================

// Describe summarizes the numeric values of a column.
func (s *AnalysisService) Describe(column string) (stats.Summary, error) {
	table, err := s.snapshot()
	if err != nil {
		return stats.Summary{}, err
	}
	return describe(table, column)
}

func describe(table *dataset.Table, column string) (stats.Summary, error) {
	sample, err := extract(table, column)
	if err != nil {
		return stats.Summary{}, err
	}
	summary, err := descriptive.Summarize(sample)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("describe %s: %w", column, err)
	}
	return summary, nil
}

// NormalityTest runs the size-appropriate normality test on a column.
func (s *AnalysisService) NormalityTest(column string) (stats.NormalityResult, error) {
	sample, err := s.ExtractNumericColumn(column)
	if err != nil {
		return stats.NormalityResult{}, err
	}
	result, err := normality.Test(sample)
	if err != nil {
		return stats.NormalityResult{}, fmt.Errorf("normality of %s: %w", column, err)
	}
	return result, nil
}

// Correlate runs the full pipeline on two columns. An empty sidedness uses
// the configured default. The confidence interval is at 1 − α.
func (s *AnalysisService) Correlate(column1, column2 string, sidedness stats.Sidedness) (stats.CorrelationResult, error) {
	table, err := s.snapshot()
	if err != nil {
		return stats.CorrelationResult{}, err
	}
	return s.correlate(table, column1, column2, s.resolveSidedness(sidedness), s.Alpha())
}

// correlate runs the pair pipeline on one table with the interval at 1−alpha.
func (s *AnalysisService) correlate(table *dataset.Table, column1, column2 string, sidedness stats.Sidedness, alpha float64) (stats.CorrelationResult, error) {
	x, err := extract(table, column1)
	if err != nil {
		return stats.CorrelationResult{}, err
	}
	y, err := extract(table, column2)
	if err != nil {
		return stats.CorrelationResult{}, err
	}

	result, err := correlation.Correlate(x, y, sidedness)
	if err != nil {
		return stats.CorrelationResult{}, fmt.Errorf("correlate %s and %s: %w", column1, column2, err)
	}
	result.ConfidenceInterval = correlation.ConfidenceInterval(result.Coefficient, result.N, 1-alpha)

	s.logger.Debug("%s vs %s: %s = %.4f, p = %.4f (%s)",
		column1, column2, result.Method.Symbol(), result.Coefficient, result.PValue, result.Method)
	return result, nil
}

// TestHypothesis decides H0 at the configured significance level.
func (s *AnalysisService) TestHypothesis(result stats.CorrelationResult) (stats.HypothesisDecision, error) {
	return inference.TestHypothesis(result, s.Alpha())
}

// TestHypothesisAt decides H0 at an explicit significance level.
func (s *AnalysisService) TestHypothesisAt(result stats.CorrelationResult, alpha float64) (stats.HypothesisDecision, error) {
	return inference.TestHypothesis(result, alpha)
}

// CorrelateByDimensions correlates every subscale total of var1 with every
// subscale total of var2.
func (s *AnalysisService) CorrelateByDimensions(ctx context.Context, var1, var2 string, sidedness stats.Sidedness) ([]stats.DimensionCorrelation, error) {
	state, err := s.pairState(var1, var2)
	if err != nil {
		return nil, err
	}
	return s.correlateDimensions(ctx, state, s.resolveSidedness(sidedness))
}

func (s *AnalysisService) correlateDimensions(ctx context.Context, state pairState, sidedness stats.Sidedness) ([]stats.DimensionCorrelation, error) {
	if len(state.dims1) == 0 || len(state.dims2) == 0 {
		return nil, fmt.Errorf("%w: %s and %s", core.ErrDimensionsNotConfigured, state.var1, state.var2)
	}
	return inference.CorrelateDimensions(ctx, state.table, state.dims1, state.dims2, sidedness, s.workers)
}

// pairState is everything an analysis of one variable pair reads, captured
// under a single read lock so a concurrent load cannot mix two datasets.
type pairState struct {
	table        *dataset.Table
	var1, var2   string
	dims1, dims2 dataset.DimensionSet
	framework    inference.FrameworkConfig
}

func (s *AnalysisService) pairState(var1, var2 string) (pairState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return pairState{}, core.ErrDatasetNotLoaded
	}
	return pairState{
		table:     s.table,
		var1:      var1,
		var2:      var2,
		dims1:     s.dimensions[var1],
		dims2:     s.dimensions[var2],
		framework: s.framework,
	}, nil
}

// ============================================================================
// FRAMEWORK
// ============================================================================

// ConfigureFramework sets the study type and significance level.
func (s *AnalysisService) ConfigureFramework(cfg inference.FrameworkConfig) error {
	if err := inference.ValidateAlpha(cfg.SignificanceLevel); err != nil {
		return err
	}
	if cfg.StudyType == "" {
		cfg.StudyType = inference.StudyCorrelational
	}

	s.mu.Lock()
	s.framework = cfg
	s.mu.Unlock()
	return nil
}

// FrameworkConfig returns the current study settings.
func (s *AnalysisService) FrameworkConfig() inference.FrameworkConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.framework
}

// Alpha is the configured significance level.
func (s *AnalysisService) Alpha() float64 {
	return s.FrameworkConfig().SignificanceLevel
}

// Sidedness is the default test sidedness.
func (s *AnalysisService) Sidedness() stats.Sidedness {
	return s.sidedness
}

func (s *AnalysisService) resolveSidedness(sidedness stats.Sidedness) stats.Sidedness {
	if sidedness == "" {
		return s.sidedness
	}
	return sidedness
}
