package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// StatusUpdate carries the accepted transition and its auxiliary fields.
// ExpectedVersion implements optimistic concurrency: the write fails with
// ErrWriteConflict when another writer advanced the row first.
type StatusUpdate struct {
	Target          scheduling.Status
	LossReason      *string
	ClosureReason   *string
	Notes           *string
	FollowUpDate    *time.Time
	ExpectedVersion int
}

// UpdateStatus commits an accepted status transition. For transitions into a
// committed state the enquiry's sessions enter the exclusion constraint in
// the same transaction; a constraint hit from a concurrent commit surfaces
// as ErrWriteConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate) (Enquiry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Enquiry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE enquiries
		SET status = $2,
			loss_reason = COALESCE($3, loss_reason),
			closure_reason = COALESCE($4, closure_reason),
			notes = COALESCE($5, notes),
			follow_up_date = COALESCE($6, follow_up_date),
			version = version + 1,
			updated_at = now()
		WHERE id = $1 AND version = $7
		RETURNING ` + enquiryColumns

	saved, err := scanEnquiry(tx.QueryRow(ctx, query,
		id,
		update.Target,
		update.LossReason,
		update.ClosureReason,
		update.Notes,
		update.FollowUpDate,
		update.ExpectedVersion,
	))
	if err != nil {
		if isNoRows(err) {
			// Either the enquiry vanished or its version moved; both mean
			// the caller's snapshot is stale.
			if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrNotFound) {
				return Enquiry{}, ErrNotFound
			}
			return Enquiry{}, ErrWriteConflict
		}
		return Enquiry{}, fmt.Errorf("failed to update status: %w", asWriteConflict(err))
	}

	committed := update.Target.Committed()
	if update.Target.Withdrawn() || committed {
		if _, err := tx.Exec(ctx,
			`UPDATE sessions SET committed = $2, updated_at = now() WHERE enquiry_id = $1`,
			id, committed); err != nil {
			return Enquiry{}, fmt.Errorf("failed to update session commitment: %w", asWriteConflict(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Enquiry{}, fmt.Errorf("failed to commit status update: %w", asWriteConflict(err))
	}

	return saved, nil
}

// MarkBooked advances the enquiry to booked inside an existing transaction,
// releasing its sessions from the exclusion constraint; the booking's
// sessions take over as the scheduling source of truth.
func MarkBooked(ctx context.Context, tx pgxTx, id uuid.UUID, expectedVersion int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE enquiries SET status = 'booked', version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $2`, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to mark enquiry booked: %w", asWriteConflict(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrWriteConflict
	}

	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET committed = FALSE, updated_at = now() WHERE enquiry_id = $1`, id); err != nil {
		return fmt.Errorf("failed to release enquiry sessions: %w", err)
	}

	return nil
}

// Reopen returns a lost or closed enquiry to ongoing.
func (r *Repository) Reopen(ctx context.Context, id uuid.UUID, notes *string) (Enquiry, error) {
	query := `
		UPDATE enquiries
		SET status = 'ongoing',
			notes = COALESCE($2, notes),
			version = version + 1,
			updated_at = now()
		WHERE id = $1 AND status IN ('lost', 'closed')
		RETURNING ` + enquiryColumns

	// The reopen reason itself lands in the activity log, written by the
	// service after this update succeeds.
	saved, err := scanEnquiry(r.pool.QueryRow(ctx, query, id, notes))
	if err != nil {
		if isNoRows(err) {
			if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrNotFound) {
				return Enquiry{}, ErrNotFound
			}
			return Enquiry{}, ErrWriteConflict
		}
		return Enquiry{}, fmt.Errorf("failed to reopen enquiry: %w", err)
	}

	return saved, nil
}

// pgxTx is the narrow transaction surface shared with the bookings module.
type pgxTx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// asWriteConflict maps serialization failures at commit time (exclusion or
// uniqueness violations) to ErrWriteConflict.
func asWriteConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" || pgErr.Code == "23505" {
			return ErrWriteConflict
		}
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
