package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so history writes can
// participate in transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TransitionOutcome is what a transition callback produces: the entry to
// append and, optionally, updates to the claim's stable fields.
type TransitionOutcome struct {
	Entry           *domain.ClaimHistoryEntry
	NewProjectID    *string
	FinalResolution *string
}

// TransitionFunc builds the next history entry from the latest one. The
// latest entry is never nil: claims are born with their first entry.
// Returning an error aborts the transition without touching the ledger.
type TransitionFunc func(latest *domain.ClaimHistoryEntry) (*TransitionOutcome, error)

// ClaimHistoryRepository is the append-only state-history ledger. Entries are
// never updated except to stamp their end time when superseded.
type ClaimHistoryRepository interface {
	Append(ctx context.Context, entry *domain.ClaimHistoryEntry) error
	// CloseOpen stamps endTime/endDate on the open entry for the claim.
	// No-op when nothing is open.
	CloseOpen(ctx context.Context, claimID string, closeTime time.Time) error
	// Latest returns the most recently created entry, open or not.
	Latest(ctx context.Context, claimID string) (*domain.ClaimHistoryEntry, error)
	ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimHistoryEntry, error)
	// ApplyTransition runs close-then-append as one transaction, holding a
	// row lock on the claim so concurrent transitions on the same claim
	// serialize. Transitions on different claims proceed in parallel.
	ApplyTransition(ctx context.Context, claimID string, closeTime time.Time, build TransitionFunc) (*domain.ClaimHistoryEntry, error)
}

type claimHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewClaimHistoryRepository builds the ledger repository.
func NewClaimHistoryRepository(pool *pgxpool.Pool) ClaimHistoryRepository {
	return &claimHistoryRepository{pool: pool}
}

const historyColumns = `
        id, claim_id, action, start_time, end_time, start_date, end_date,
        status, priority, criticality, claim_type, actor_id,
        subarea_id, subarea_name, area_id, area_name, created_at`

func insertHistoryEntry(ctx context.Context, q querier, entry *domain.ClaimHistoryEntry) error {
	const query = `
        INSERT INTO claim_history (claim_id, action, start_time, start_date,
            end_time, end_date,
            status, priority, criticality, claim_type, actor_id,
            subarea_id, subarea_name, area_id, area_name)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at`

	var subareaID, subareaName, areaID, areaName *string
	if entry.Snapshot != nil {
		subareaID = &entry.Snapshot.SubareaID
		subareaName = &entry.Snapshot.SubareaName
		areaID = &entry.Snapshot.AreaID
		areaName = &entry.Snapshot.AreaName
	}

	return q.QueryRow(ctx, query,
		entry.ClaimID,
		entry.Action,
		entry.StartTime,
		entry.StartDate,
		entry.EndTime,
		entry.EndDate,
		entry.Status,
		entry.Priority,
		entry.Criticality,
		entry.ClaimType,
		entry.ActorID,
		subareaID,
		subareaName,
		areaID,
		areaName,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *claimHistoryRepository) Append(ctx context.Context, entry *domain.ClaimHistoryEntry) error {
	return insertHistoryEntry(ctx, r.pool, entry)
}

func (r *claimHistoryRepository) CloseOpen(ctx context.Context, claimID string, closeTime time.Time) error {
	return closeOpenEntry(ctx, r.pool, claimID, closeTime)
}

func closeOpenEntry(ctx context.Context, q querier, claimID string, closeTime time.Time) error {
	const query = `
        UPDATE claim_history SET end_time=$2, end_date=$2
        WHERE claim_id=$1 AND end_date IS NULL`
	_, err := q.Exec(ctx, query, claimID, closeTime)
	return err
}

func (r *claimHistoryRepository) Latest(ctx context.Context, claimID string) (*domain.ClaimHistoryEntry, error) {
	return latestEntry(ctx, r.pool, claimID)
}

func latestEntry(ctx context.Context, q querier, claimID string) (*domain.ClaimHistoryEntry, error) {
	query := `SELECT ` + historyColumns + `
        FROM claim_history WHERE claim_id=$1
        ORDER BY created_at DESC, id DESC LIMIT 1`
	return scanHistoryEntry(q.QueryRow(ctx, query, claimID))
}

func (r *claimHistoryRepository) ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimHistoryEntry, error) {
	query := `SELECT ` + historyColumns + `
        FROM claim_history WHERE claim_id=$1
        ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClaimHistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}
	return result, rows.Err()
}

func (r *claimHistoryRepository) ApplyTransition(ctx context.Context, claimID string, closeTime time.Time, build TransitionFunc) (*domain.ClaimHistoryEntry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Row lock serializes concurrent transitions per claim and doubles as
	// the existence check.
	var lockedID string
	if err := tx.QueryRow(ctx, `SELECT id FROM claims WHERE id=$1 FOR UPDATE`, claimID).Scan(&lockedID); err != nil {
		return nil, err
	}

	latest, err := latestEntry(ctx, tx, claimID)
	if err != nil {
		return nil, err
	}

	outcome, err := build(latest)
	if err != nil {
		return nil, err
	}
	if outcome == nil || outcome.Entry == nil {
		return nil, errors.New("transition produced no entry")
	}

	if err := closeOpenEntry(ctx, tx, claimID, closeTime); err != nil {
		return nil, err
	}

	outcome.Entry.ClaimID = claimID
	if err := insertHistoryEntry(ctx, tx, outcome.Entry); err != nil {
		return nil, err
	}

	if outcome.NewProjectID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE claims SET project_id=$1, updated_at=NOW() WHERE id=$2`,
			*outcome.NewProjectID, claimID); err != nil {
			return nil, err
		}
	}

	if outcome.FinalResolution != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE claims SET final_resolution=$1, updated_at=NOW() WHERE id=$2`,
			*outcome.FinalResolution, claimID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return outcome.Entry, nil
}

func scanHistoryEntry(row pgx.Row) (*domain.ClaimHistoryEntry, error) {
	var entry domain.ClaimHistoryEntry
	var subareaID, subareaName, areaID, areaName *string
	if err := row.Scan(
		&entry.ID,
		&entry.ClaimID,
		&entry.Action,
		&entry.StartTime,
		&entry.EndTime,
		&entry.StartDate,
		&entry.EndDate,
		&entry.Status,
		&entry.Priority,
		&entry.Criticality,
		&entry.ClaimType,
		&entry.ActorID,
		&subareaID,
		&subareaName,
		&areaID,
		&areaName,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}
	if subareaID != nil {
		entry.Snapshot = &domain.OrgSnapshot{
			SubareaID:   *subareaID,
			SubareaName: deref(subareaName),
			AreaID:      deref(areaID),
			AreaName:    deref(areaName),
		}
	}
	return &entry, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
