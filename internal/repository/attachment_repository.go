package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// AttachmentRepository persists attachment references.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.AttachmentReference) error
	ListByClaim(ctx context.Context, claimID string) ([]domain.AttachmentReference, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.AttachmentReference) error {
	const query = `
        INSERT INTO attachment_references (claim_id, name, kind, url)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		attachment.ClaimID,
		attachment.Name,
		attachment.Kind,
		attachment.URL,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) ListByClaim(ctx context.Context, claimID string) ([]domain.AttachmentReference, error) {
	const query = `
        SELECT id, claim_id, name, kind, url, created_at
        FROM attachment_references WHERE claim_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AttachmentReference
	for rows.Next() {
		var attachment domain.AttachmentReference
		if err := rows.Scan(
			&attachment.ID,
			&attachment.ClaimID,
			&attachment.Name,
			&attachment.Kind,
			&attachment.URL,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
