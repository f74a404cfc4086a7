package ports

import (
	"context"

	"gocorr/domain/core"
	"gocorr/domain/report"
)

// ReportRepository defines the interface for analysis report persistence
type ReportRepository interface {
	// Save stores a report, replacing any report with the same ID
	Save(ctx context.Context, r *report.Report) error

	// Get retrieves a report by ID; unknown IDs return core.ErrReportNotFound
	Get(ctx context.Context, id core.ReportID) (*report.Report, error)

	// List returns report summaries, newest first, at most limit entries
	List(ctx context.Context, limit int) ([]report.Summary, error)
}
