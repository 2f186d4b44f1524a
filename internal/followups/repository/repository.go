// Package repository provides data access for follow-up reminders.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no follow-up matches the given ID.
var ErrNotFound = errors.New("follow-up not found")

// FollowUp is the persistence model for one reminder. Rows are never
// deleted; completion flips a flag so the history stays auditable.
type FollowUp struct {
	ID             uuid.UUID
	EnquiryID      uuid.UUID
	FollowUpDate   time.Time
	FollowUpTime   string
	Notes          string
	Completed      bool
	CompletedAt    *time.Time
	RepeatFollowUp bool
	RepeatInterval *string
	RepeatEndDate  *time.Time
	CreatedAt      time.Time
}

// Repository provides access to follow-up rows.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new follow-ups repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const followUpColumns = `id, enquiry_id, follow_up_date, follow_up_time, notes,
	completed, completed_at, repeat_follow_up, repeat_interval, repeat_end_date, created_at`

func scanFollowUp(row pgx.Row) (FollowUp, error) {
	var f FollowUp
	err := row.Scan(
		&f.ID,
		&f.EnquiryID,
		&f.FollowUpDate,
		&f.FollowUpTime,
		&f.Notes,
		&f.Completed,
		&f.CompletedAt,
		&f.RepeatFollowUp,
		&f.RepeatInterval,
		&f.RepeatEndDate,
		&f.CreatedAt,
	)
	return f, err
}

// CreateBatch inserts a follow-up together with its repeat expansion in one
// transaction.
func (r *Repository) CreateBatch(ctx context.Context, items []FollowUp) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO followups
			(id, enquiry_id, follow_up_date, follow_up_time, notes,
			 repeat_follow_up, repeat_interval, repeat_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, f := range items {
		_, err := tx.Exec(ctx, query,
			f.ID, f.EnquiryID, f.FollowUpDate, f.FollowUpTime, f.Notes,
			f.RepeatFollowUp, f.RepeatInterval, f.RepeatEndDate)
		if err != nil {
			return fmt.Errorf("failed to create follow-up: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID returns one follow-up or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM followups WHERE id = $1`

	f, err := scanFollowUp(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return FollowUp{}, ErrNotFound
	}
	if err != nil {
		return FollowUp{}, fmt.Errorf("failed to get follow-up: %w", err)
	}
	return f, nil
}

// ListByEnquiry returns all follow-ups of an enquiry, soonest first.
func (r *Repository) ListByEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]FollowUp, error) {
	query := `SELECT ` + followUpColumns + `
		FROM followups WHERE enquiry_id = $1 ORDER BY follow_up_date, follow_up_time`
	return r.list(ctx, query, enquiryID)
}

// ListPendingByEnquiry returns the enquiry's follow-ups not yet completed.
func (r *Repository) ListPendingByEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]FollowUp, error) {
	query := `SELECT ` + followUpColumns + `
		FROM followups WHERE enquiry_id = $1 AND NOT completed
		ORDER BY follow_up_date, follow_up_time`
	return r.list(ctx, query, enquiryID)
}

// ListDueBy returns every pending follow-up due on or before the given date.
func (r *Repository) ListDueBy(ctx context.Context, date time.Time) ([]FollowUp, error) {
	query := `SELECT ` + followUpColumns + `
		FROM followups WHERE NOT completed AND follow_up_date <= $1
		ORDER BY follow_up_date, follow_up_time`
	return r.list(ctx, query, date)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]FollowUp, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	defer rows.Close()

	items := make([]FollowUp, 0)
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan follow-up: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate follow-ups: %w", err)
	}

	return items, nil
}

// Complete marks one follow-up as done.
func (r *Repository) Complete(ctx context.Context, id uuid.UUID) (FollowUp, error) {
	query := `
		UPDATE followups SET completed = TRUE, completed_at = now()
		WHERE id = $1 AND NOT completed
		RETURNING ` + followUpColumns

	f, err := scanFollowUp(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		// Either missing or already completed; completion is idempotent for
		// the latter.
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return FollowUp{}, getErr
		}
		return existing, nil
	}
	if err != nil {
		return FollowUp{}, fmt.Errorf("failed to complete follow-up: %w", err)
	}
	return f, nil
}

// CompleteAllForEnquiry marks every pending follow-up of an enquiry as done
// and returns how many were flipped.
func (r *Repository) CompleteAllForEnquiry(ctx context.Context, enquiryID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE followups SET completed = TRUE, completed_at = now()
		 WHERE enquiry_id = $1 AND NOT completed`, enquiryID)
	if err != nil {
		return 0, fmt.Errorf("failed to complete follow-ups: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
