package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ClaimMessageRepository stores claim discussion messages.
type ClaimMessageRepository interface {
	Create(ctx context.Context, message *domain.ClaimMessage) error
	ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimMessage, error)
}

type claimMessageRepository struct {
	pool *pgxpool.Pool
}

// NewClaimMessageRepository builds repository.
func NewClaimMessageRepository(pool *pgxpool.Pool) ClaimMessageRepository {
	return &claimMessageRepository{pool: pool}
}

func (r *claimMessageRepository) Create(ctx context.Context, message *domain.ClaimMessage) error {
	const query = `
        INSERT INTO claim_messages (claim_id, author_id, content, visibility)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.ClaimID,
		message.AuthorID,
		message.Content,
		message.Visibility,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *claimMessageRepository) ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimMessage, error) {
	const query = `
        SELECT id, claim_id, author_id, content, visibility, created_at
        FROM claim_messages WHERE claim_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClaimMessage
	for rows.Next() {
		var message domain.ClaimMessage
		if err := rows.Scan(
			&message.ID,
			&message.ClaimID,
			&message.AuthorID,
			&message.Content,
			&message.Visibility,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}
