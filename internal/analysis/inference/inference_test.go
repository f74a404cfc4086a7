package inference

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gocorr/domain/core"
	"gocorr/domain/dataset"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestHypothesis(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		alpha    float64
		expected stats.Decision
	}{
		{"below alpha", 0.01, 0.05, stats.Reject},
		{"equal to alpha", 0.05, 0.05, stats.FailToReject},
		{"above alpha", 0.2, 0.05, stats.FailToReject},
		{"strict alpha", 0.02, 0.01, stats.FailToReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stats.CorrelationResult{
				PValue:         tt.p,
				Interpretation: stats.Classify(0.4, tt.p),
			}
			decision, err := TestHypothesis(result, tt.alpha)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, decision.Decision)
			assert.Equal(t, tt.alpha, decision.Alpha)
			assert.Equal(t, tt.p, decision.PValue)
			assert.NotEmpty(t, decision.ConclusionH0)
			assert.NotEmpty(t, decision.ConclusionH1)
		})
	}
}

func TestTestHypothesisMentionsDirection(t *testing.T) {
	result := stats.CorrelationResult{PValue: 0.001, Interpretation: stats.Classify(-0.8, 0.001)}
	decision, err := TestHypothesis(result, 0.05)
	require.NoError(t, err)
	assert.Contains(t, decision.ConclusionH1, "negative")
}

func TestTestHypothesisInvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 1, -0.1, 1.5} {
		_, err := TestHypothesis(stats.CorrelationResult{PValue: 0.01}, alpha)
		assert.True(t, errors.Is(err, core.ErrInvalidAlpha), "alpha=%v", alpha)
	}
}

// surveyTable builds rows with items A1..A3 and B1..B3; A3 row 0 is text.
func surveyTable(rows int) *dataset.Table {
	table := &dataset.Table{Columns: []string{"A1", "A2", "A3", "B1", "B2", "B3"}}
	for i := 0; i < rows; i++ {
		f := float64(i)
		row := dataset.Row{
			"A1": dataset.NumberCell(1 + f),
			"A2": dataset.NumberCell(float64((i*3)%7 + 1)),
			"A3": dataset.NumberCell(float64((i*5)%4 + 1)),
			"B1": dataset.NumberCell(2 * f),
			"B2": dataset.NumberCell(float64((i*2)%5 + 1)),
			"B3": dataset.NumberCell(float64(rows - i)),
		}
		if i == 0 {
			row["A3"] = dataset.TextCell("n/a")
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func TestSubscaleTotalsTreatsNonNumericAsZero(t *testing.T) {
	table := surveyTable(4)
	totals := SubscaleTotals(table, dataset.Subscale{Name: "A", Items: []string{"A1", "A3", "missing"}})

	require.Len(t, totals, 4)
	// row 0: A1=1, A3 text -> 0
	assert.Equal(t, 1.0, totals[0])
	// row 1: A1=2, A3=(5%4)+1=2
	assert.Equal(t, 4.0, totals[1])
}

func TestCorrelateDimensionsOrder(t *testing.T) {
	table := surveyTable(15)
	dims1 := dataset.DimensionSet{
		{Name: "Attention", Items: []string{"A1", "A2"}},
		{Name: "Memory", Items: []string{"A3"}},
	}
	dims2 := dataset.DimensionSet{
		{Name: "Speed", Items: []string{"B1"}},
		{Name: "Accuracy", Items: []string{"B2"}},
		{Name: "Fatigue", Items: []string{"B3", "B2"}},
	}

	results, err := CorrelateDimensions(context.Background(), table, dims1, dims2, stats.TwoTailed, 2)
	require.NoError(t, err)
	require.Len(t, results, 6)

	var got []string
	for _, r := range results {
		got = append(got, r.Dimension1+"×"+r.Dimension2)
	}
	assert.Equal(t, []string{
		"Attention×Speed", "Attention×Accuracy", "Attention×Fatigue",
		"Memory×Speed", "Memory×Accuracy", "Memory×Fatigue",
	}, got)

	for _, r := range results {
		assert.Equal(t, 15, r.N)
		assert.Equal(t, stats.TwoTailed, r.Sidedness)
		assert.NotEmpty(t, r.Items1)
		assert.NotEmpty(t, r.Items2)
	}
}

func TestCorrelateDimensionsMatchesDirectCorrelation(t *testing.T) {
	table := surveyTable(12)
	dims1 := dataset.DimensionSet{{Name: "A", Items: []string{"A1", "A2"}}}
	dims2 := dataset.DimensionSet{{Name: "B", Items: []string{"B1", "B3"}}}

	results, err := CorrelateDimensions(context.Background(), table, dims1, dims2, stats.OneTailed, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	direct, err := correlation.Correlate(SubscaleTotals(table, dims1[0]), SubscaleTotals(table, dims2[0]), stats.OneTailed)
	require.NoError(t, err)
	assert.Equal(t, direct, results[0].CorrelationResult)
}

func TestCorrelateDimensionsErrors(t *testing.T) {
	dims := dataset.DimensionSet{{Name: "A", Items: []string{"A1"}}}

	_, err := CorrelateDimensions(context.Background(), surveyTable(10), dims, nil, stats.TwoTailed, 2)
	assert.True(t, errors.Is(err, core.ErrDimensionsNotConfigured))

	_, err = CorrelateDimensions(context.Background(), nil, dims, dims, stats.TwoTailed, 2)
	assert.True(t, errors.Is(err, core.ErrDatasetNotLoaded))

	// two participants are not enough for any pair
	results, err := CorrelateDimensions(context.Background(), surveyTable(2), dims, dims, stats.TwoTailed, 2)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
	assert.Nil(t, results)
}

func TestCorrelateDimensionsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dims := dataset.DimensionSet{{Name: "A", Items: []string{"A1"}}}
	_, err := CorrelateDimensions(ctx, surveyTable(10), dims, dims, stats.TwoTailed, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildFramework(t *testing.T) {
	fw := BuildFramework(FrameworkInput{
		Var1:       "Stress",
		Var2:       "Performance",
		Unit:       "students",
		Place:      "a public school",
		Dimension1: []string{"Work", "Family"},
		Dimension2: []string{"Grades", "Attendance"},
	}, DefaultFrameworkConfig())

	assert.Equal(t, "What is the relationship between Stress and Performance in students of a public school?", fw.Question)
	assert.Equal(t, "Determine the relationship between Stress and Performance in students of a public school.", fw.GeneralObjective)
	require.Len(t, fw.SpecificObjectives, 4)
	assert.Equal(t, "Establish the link between 'Work' of Stress and 'Grades' of Performance.", fw.SpecificObjectives[0])
	assert.Equal(t, "Establish the link between 'Family' of Stress and 'Attendance' of Performance.", fw.SpecificObjectives[3])
	assert.Equal(t, "There is a statistically significant relationship between Stress and Performance in students of a public school.", fw.Hypotheses.Researcher)
	assert.Equal(t, "There is no statistically significant relationship between Stress and Performance in students of a public school.", fw.Hypotheses.Null)
	assert.Equal(t, "There is indeed a statistically significant relationship between Stress and Performance in students of a public school.", fw.Hypotheses.Alternative)
	assert.Equal(t, DefaultAlpha, fw.Config.SignificanceLevel)
}

func TestSpecificObjectivesVariants(t *testing.T) {
	tests := []struct {
		name string
		in   FrameworkInput
		want []string
	}{
		{
			name: "no dimensions",
			in:   FrameworkInput{Var1: "X", Var2: "Y"},
			want: []string{"Establish the link between X and Y."},
		},
		{
			name: "first only",
			in:   FrameworkInput{Var1: "X", Var2: "Y", Dimension1: []string{"a", "b"}},
			want: []string{"Establish the link between 'a' of X and Y.", "Establish the link between 'b' of X and Y."},
		},
		{
			name: "second only",
			in:   FrameworkInput{Var1: "X", Var2: "Y", Dimension2: []string{"c"}},
			want: []string{"Establish the link between X and 'c' of Y."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := BuildFramework(tt.in, DefaultFrameworkConfig())
			assert.Equal(t, tt.want, fw.SpecificObjectives)
			assert.Equal(t, "What is the relationship between X and Y?", fw.Question)
		})
	}
}

func TestBuildNarrative(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	y := []float64{2, 1, 4, 3, 6, 5, 8, 7, 10, 9, 12, 11}

	result, err := correlation.Correlate(x, y, stats.TwoTailed)
	require.NoError(t, err)
	decision, err := TestHypothesis(result, 0.05)
	require.NoError(t, err)

	narrative := BuildNarrative("Sleep", "Mood", result, decision)
	assert.Contains(t, narrative.Normality, "Sleep")
	assert.Contains(t, narrative.Correlation, fmt.Sprintf("%.1f%%", result.Interpretation.SharedVariance*100))
	assert.Contains(t, narrative.Hypothesis, "Increase the sample size (N = 12)")
	if decision.Rejected() {
		assert.Contains(t, narrative.Hypothesis, "rejecting H0")
	}
}

func TestSampleSizeRecommendation(t *testing.T) {
	assert.Contains(t, SampleSizeRecommendation(10), "Increase the sample size")
	assert.Contains(t, SampleSizeRecommendation(50), "larger sample")
	assert.Contains(t, SampleSizeRecommendation(150), "multivariate")
	assert.Contains(t, SampleSizeRecommendation(300), "N = 300")
	assert.Contains(t, SampleSizeRecommendation(1000), "very large")
}
