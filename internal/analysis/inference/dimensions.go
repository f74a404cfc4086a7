package inference

import (
	"context"
	"fmt"

	"gocorr/domain/core"
	"gocorr/domain/dataset"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/correlation"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// DefaultWorkers bounds the pairs correlated at once when the caller gives
// no limit.
const DefaultWorkers = 4

// SubscaleTotals sums the item columns of a subscale per row. Cells that are
// missing or not numeric count as 0, so every row contributes a total.
func SubscaleTotals(table *dataset.Table, subscale dataset.Subscale) []float64 {
	totals := make([]float64, len(table.Rows))
	for _, item := range subscale.Items {
		floats.Add(totals, table.ItemColumn(item))
	}
	return totals
}

// CorrelateDimensions correlates every subscale of the first variable with
// every subscale of the second. Results follow the cross product with the
// first variable's subscales in the outer position. A single failing pair
// fails the whole call.
func CorrelateDimensions(ctx context.Context, table *dataset.Table, dims1, dims2 dataset.DimensionSet,
	sidedness stats.Sidedness, workers int) ([]stats.DimensionCorrelation, error) {
	if table == nil {
		return nil, core.ErrDatasetNotLoaded
	}
	if len(dims1) == 0 || len(dims2) == 0 {
		return nil, core.ErrDimensionsNotConfigured
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	totals1 := make([][]float64, len(dims1))
	for i, s := range dims1 {
		totals1[i] = SubscaleTotals(table, s)
	}
	totals2 := make([][]float64, len(dims2))
	for j, s := range dims2 {
		totals2[j] = SubscaleTotals(table, s)
	}

	results := make([]stats.DimensionCorrelation, len(dims1)*len(dims2))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range dims1 {
		for j := range dims2 {
			i, j := i, j
			slot := i*len(dims2) + j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				result, err := correlation.Correlate(totals1[i], totals2[j], sidedness)
				if err != nil {
					return fmt.Errorf("dimensions %s × %s: %w", dims1[i].Name, dims2[j].Name, err)
				}
				results[slot] = stats.DimensionCorrelation{
					Dimension1:        dims1[i].Name,
					Dimension2:        dims2[j].Name,
					Items1:            dims1[i].Items,
					Items2:            dims2[j].Items,
					CorrelationResult: result,
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
