package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ProjectRepository manages project directory persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListActive(ctx context.Context) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository builds the repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (title, description, owner_id, project_type, is_active, registration_date)
        VALUES ($1,$2,$3,$4,$5,COALESCE($6, NOW()))
        RETURNING id, registration_date, created_at, updated_at`
	var regDate any
	if !project.RegistrationDate.IsZero() {
		regDate = project.RegistrationDate
	}
	return r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.OwnerID,
		project.ProjectType,
		project.IsActive,
		regDate,
	).Scan(&project.ID, &project.RegistrationDate, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET title=$1, description=$2, owner_id=$3, project_type=$4,
            is_active=$5, deleted_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		project.Title,
		project.Description,
		project.OwnerID,
		project.ProjectType,
		project.IsActive,
		project.DeletedAt,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
        SELECT id, title, description, owner_id, project_type, is_active,
               registration_date, created_at, updated_at, deleted_at
        FROM projects WHERE id=$1`
	var project domain.Project
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.OwnerID,
		&project.ProjectType,
		&project.IsActive,
		&project.RegistrationDate,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const query = `
        SELECT id, title, description, owner_id, project_type, is_active,
               registration_date, created_at, updated_at, deleted_at
        FROM projects WHERE owner_id=$1 AND deleted_at IS NULL
        ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *projectRepository) ListActive(ctx context.Context) ([]domain.Project, error) {
	const query = `
        SELECT id, title, description, owner_id, project_type, is_active,
               registration_date, created_at, updated_at, deleted_at
        FROM projects WHERE is_active AND deleted_at IS NULL
        ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *projectRepository) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Title,
			&project.Description,
			&project.OwnerID,
			&project.ProjectType,
			&project.IsActive,
			&project.RegistrationDate,
			&project.CreatedAt,
			&project.UpdatedAt,
			&project.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}
