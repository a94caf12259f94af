package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/report"
)

// ReportSourceRepository streams the denormalized history rows the reporting
// engine aggregates. Joins to claims and projects happen here; everything
// else (matching, grouping, bucketing) is pure and lives in the report
// package.
type ReportSourceRepository interface {
	FetchRows(ctx context.Context) ([]report.Row, error)
}

type reportSourceRepository struct {
	pool *pgxpool.Pool
}

// NewReportSourceRepository builds the repository.
func NewReportSourceRepository(pool *pgxpool.Pool) ReportSourceRepository {
	return &reportSourceRepository{pool: pool}
}

func (r *reportSourceRepository) FetchRows(ctx context.Context) ([]report.Row, error) {
	const query = `
        SELECT h.id, h.claim_id, c.description, c.project_id, p.project_type, p.owner_id,
               h.status, h.priority, h.criticality, h.claim_type, h.actor_id,
               h.subarea_id, h.subarea_name, h.area_id, h.area_name,
               h.start_date, h.end_date, h.created_at
        FROM claim_history h
        JOIN claims c ON c.id = h.claim_id
        JOIN projects p ON p.id = c.project_id
        ORDER BY h.claim_id, h.created_at ASC, h.id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []report.Row
	for rows.Next() {
		var row report.Row
		if err := rows.Scan(
			&row.EntryID,
			&row.ClaimID,
			&row.ClaimDescription,
			&row.ProjectID,
			&row.ProjectType,
			&row.ProjectOwnerID,
			&row.Status,
			&row.Priority,
			&row.Criticality,
			&row.ClaimType,
			&row.ActorID,
			&row.SubareaID,
			&row.SubareaName,
			&row.AreaID,
			&row.AreaName,
			&row.StartDate,
			&row.EndDate,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
