// Package memory keeps reports in process for runs without a database.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"gocorr/domain/core"
	"gocorr/domain/report"
	"gocorr/ports"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[core.ReportID][]byte
}

// NewReportRepository creates an empty in-memory report store. Reports are
// stored as JSON so callers never share mutable state with the store.
func NewReportRepository() ports.ReportRepository {
	return &reportRepository{reports: make(map[core.ReportID][]byte)}
}

func (r *reportRepository) Save(ctx context.Context, rep *report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[rep.ID] = payload
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id core.ReportID) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	payload, ok := r.reports[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}

	var rep report.Report
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &rep, nil
}

func (r *reportRepository) List(ctx context.Context, limit int) ([]report.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	summaries := make([]report.Summary, 0, len(r.reports))
	for _, payload := range r.reports {
		var rep report.Report
		if err := json.Unmarshal(payload, &rep); err != nil {
			r.mu.RUnlock()
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
		summaries = append(summaries, rep.Summarize())
	}
	r.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
