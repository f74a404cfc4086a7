package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gocorr/domain/core"
	"gocorr/domain/report"
	"gocorr/ports"

	"github.com/jmoiron/sqlx"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository. The analysis_reports
// table comes from the migrations package.
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// Save upserts a report. The summary columns duplicate fields of the JSON
// payload so listings never decode it.
func (r *reportRepository) Save(ctx context.Context, rep *report.Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `INSERT INTO analysis_reports (
		id, variable1, variable2, method, coefficient, p_value, decision, payload, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	)
	ON CONFLICT (id) DO UPDATE SET
		variable1 = EXCLUDED.variable1,
		variable2 = EXCLUDED.variable2,
		method = EXCLUDED.method,
		coefficient = EXCLUDED.coefficient,
		p_value = EXCLUDED.p_value,
		decision = EXCLUDED.decision,
		payload = EXCLUDED.payload`

	s := rep.Summarize()
	_, err = r.db.ExecContext(ctx, query,
		string(s.ID), s.Var1, s.Var2, string(s.Method), s.Coefficient, s.PValue, string(s.Decision),
		payload, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get retrieves a report by its ID
func (r *reportRepository) Get(ctx context.Context, id core.ReportID) (*report.Report, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM analysis_reports WHERE id = $1`, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &rep, nil
}

// List returns the most recent report summaries
func (r *reportRepository) List(ctx context.Context, limit int) ([]report.Summary, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, created_at, variable1, variable2, method, coefficient, p_value, decision
	FROM analysis_reports
	ORDER BY created_at DESC, id DESC
	LIMIT $1`

	summaries := []report.Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return summaries, nil
}
