package memory

import (
	"context"
	"testing"
	"time"

	"gocorr/domain/core"
	"gocorr/domain/report"
	"gocorr/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReport(var1 string, created time.Time) *report.Report {
	return &report.Report{
		ID:          core.NewReportID(),
		CreatedAt:   created,
		Variables:   report.Variables{Var1: var1, Var2: "y"},
		Correlation: stats.CorrelationResult{Coefficient: 0.4, PValue: 0.01, Method: stats.MethodSpearman},
		Hypothesis:  stats.HypothesisDecision{Decision: stats.Reject},
	}
}

func TestReportRepositorySaveGet(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository()

	rep := newReport("x", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, rep))

	got, err := repo.Get(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.Variables, got.Variables)
	assert.Equal(t, rep.Correlation.Coefficient, got.Correlation.Coefficient)

	got.Variables.Var1 = "mutated"
	again, err := repo.Get(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", again.Variables.Var1)
}

func TestReportRepositoryNotFound(t *testing.T) {
	_, err := NewReportRepository().Get(context.Background(), core.NewReportID())
	assert.ErrorIs(t, err, core.ErrReportNotFound)
	assert.True(t, core.IsNotFoundError(err))
}

func TestReportRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, newReport("old", base)))
	require.NoError(t, repo.Save(ctx, newReport("new", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, newReport("mid", base.Add(time.Minute))))

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].Var1, all[1].Var1, all[2].Var1})
	assert.Equal(t, stats.Reject, all[0].Decision)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestReportRepositoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewReportRepository().Save(ctx, newReport("x", time.Now())), context.Canceled)
}
