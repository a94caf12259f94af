package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ClaimFilter captures claim listing parameters.
type ClaimFilter struct {
	ProjectID   *string
	CreatorID   *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// ClaimRepository encapsulates claim aggregate persistence.
type ClaimRepository interface {
	// CreateWithInitialEntry persists the claim and its first history entry
	// in one transaction. Every claim has at least one entry from birth.
	CreateWithInitialEntry(ctx context.Context, claim *domain.Claim, entry *domain.ClaimHistoryEntry) error
	GetByID(ctx context.Context, id string) (*domain.Claim, error)
	ListWithFilter(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error)
	Delete(ctx context.Context, id string) error
}

type claimRepository struct {
	pool *pgxpool.Pool
}

// NewClaimRepository instantiates the repository.
func NewClaimRepository(pool *pgxpool.Pool) ClaimRepository {
	return &claimRepository{pool: pool}
}

func (r *claimRepository) CreateWithInitialEntry(ctx context.Context, claim *domain.Claim, entry *domain.ClaimHistoryEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const claimQuery = `
        INSERT INTO claims (code, description, final_resolution, project_id, creator_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, claimQuery,
		claim.Code,
		claim.Description,
		claim.FinalResolution,
		claim.ProjectID,
		claim.CreatorID,
	).Scan(&claim.ID, &claim.CreatedAt, &claim.UpdatedAt); err != nil {
		return err
	}

	entry.ClaimID = claim.ID
	if err := insertHistoryEntry(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	const query = `
        SELECT id, code, description, final_resolution, project_id, creator_id, created_at, updated_at
        FROM claims WHERE id=$1`
	var claim domain.Claim
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&claim.ID,
		&claim.Code,
		&claim.Description,
		&claim.FinalResolution,
		&claim.ProjectID,
		&claim.CreatorID,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) ListWithFilter(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error) {
	base := `SELECT id, code, description, final_resolution, project_id, creator_id, created_at, updated_at
             FROM claims`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		clauses = append(clauses, fmt.Sprintf("project_id=$%d", len(args)))
	}
	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("creator_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(description) LIKE $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Claim
	for rows.Next() {
		var claim domain.Claim
		if err := rows.Scan(
			&claim.ID,
			&claim.Code,
			&claim.Description,
			&claim.FinalResolution,
			&claim.ProjectID,
			&claim.CreatorID,
			&claim.CreatedAt,
			&claim.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, claim)
	}
	return result, rows.Err()
}

func (r *claimRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM claims WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
