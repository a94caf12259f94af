package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// SubareaRepository manages subarea directory persistence. GetByID resolves
// the parent area name too, which is what transition snapshots need.
type SubareaRepository interface {
	Create(ctx context.Context, subarea *domain.Subarea) error
	Update(ctx context.Context, subarea *domain.Subarea) error
	GetByID(ctx context.Context, id string) (*domain.Subarea, error)
	ListByArea(ctx context.Context, areaID string) ([]domain.Subarea, error)
}

type subareaRepository struct {
	pool *pgxpool.Pool
}

// NewSubareaRepository builds the repository.
func NewSubareaRepository(pool *pgxpool.Pool) SubareaRepository {
	return &subareaRepository{pool: pool}
}

func (r *subareaRepository) Create(ctx context.Context, subarea *domain.Subarea) error {
	const query = `
        INSERT INTO subareas (name, description, area_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		subarea.Name,
		subarea.Description,
		subarea.AreaID,
	).Scan(&subarea.ID, &subarea.CreatedAt, &subarea.UpdatedAt)
}

func (r *subareaRepository) Update(ctx context.Context, subarea *domain.Subarea) error {
	const query = `
        UPDATE subareas SET name=$1, description=$2, area_id=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		subarea.Name,
		subarea.Description,
		subarea.AreaID,
		subarea.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subareaRepository) GetByID(ctx context.Context, id string) (*domain.Subarea, error) {
	const query = `
        SELECT s.id, s.name, s.description, s.area_id, a.name, s.created_at, s.updated_at
        FROM subareas s JOIN areas a ON a.id = s.area_id
        WHERE s.id=$1`
	var subarea domain.Subarea
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&subarea.ID,
		&subarea.Name,
		&subarea.Description,
		&subarea.AreaID,
		&subarea.AreaName,
		&subarea.CreatedAt,
		&subarea.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &subarea, nil
}

func (r *subareaRepository) ListByArea(ctx context.Context, areaID string) ([]domain.Subarea, error) {
	const query = `
        SELECT s.id, s.name, s.description, s.area_id, a.name, s.created_at, s.updated_at
        FROM subareas s JOIN areas a ON a.id = s.area_id
        WHERE s.area_id=$1 ORDER BY s.name ASC`
	rows, err := r.pool.Query(ctx, query, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Subarea
	for rows.Next() {
		var subarea domain.Subarea
		if err := rows.Scan(
			&subarea.ID,
			&subarea.Name,
			&subarea.Description,
			&subarea.AreaID,
			&subarea.AreaName,
			&subarea.CreatedAt,
			&subarea.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, subarea)
	}
	return result, rows.Err()
}
