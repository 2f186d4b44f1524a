package repository

import (
	"context"
	"fmt"

	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, name, label, venue, session_date, start_time, end_time,
	pax_count, special_instructions`

func scanSession(row pgx.Row) (scheduling.Session, error) {
	var s scheduling.Session
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Label,
		&s.Venue,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.PaxCount,
		&s.SpecialInstructions,
	)
	return s, err
}

// insertSession writes one session row for either owner kind. The minute
// columns feed the exclusion constraint; committed marks rows owned by a
// converted or booked record.
func insertSession(ctx context.Context, tx pgx.Tx, enquiryID, bookingID *uuid.UUID, s scheduling.Session, committed bool) error {
	query := `
		INSERT INTO sessions
			(id, enquiry_id, booking_id, name, label, venue, session_date,
			 start_time, end_time, start_minute, end_minute, pax_count,
			 special_instructions, committed)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := tx.Exec(ctx, query,
		s.ID,
		enquiryID,
		bookingID,
		s.Name,
		s.Label,
		s.Venue,
		s.Date,
		s.StartTime,
		s.EndTime,
		minuteOfDay(s.StartTime),
		minuteOfDay(s.EndTime),
		s.PaxCount,
		s.SpecialInstructions,
		committed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", asWriteConflict(err))
	}
	return nil
}

// InsertOwnedSession is the exported variant used by the bookings module
// inside its own transaction.
func InsertOwnedSession(ctx context.Context, tx pgx.Tx, enquiryID, bookingID *uuid.UUID, s scheduling.Session, committed bool) error {
	return insertSession(ctx, tx, enquiryID, bookingID, s, committed)
}

// ListSessions returns the sessions owned by an enquiry.
func (r *Repository) ListSessions(ctx context.Context, enquiryID uuid.UUID) ([]scheduling.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions WHERE enquiry_id = $1 ORDER BY session_date, start_time`

	rows, err := r.pool.Query(ctx, query, enquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	items := make([]scheduling.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return items, nil
}

// ReplaceSessions swaps the enquiry's session set atomically. The committed
// flag of the new rows follows the enquiry's current status, so edits on a
// converted enquiry re-enter the exclusion constraint immediately.
func (r *Repository) ReplaceSessions(ctx context.Context, enquiryID uuid.UUID, sessions []scheduling.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status scheduling.Status
	err = tx.QueryRow(ctx, `SELECT status FROM enquiries WHERE id = $1 FOR UPDATE`, enquiryID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock enquiry: %w", err)
	}
	if status == scheduling.StatusBooked {
		return ErrSessionsLocked
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE enquiry_id = $1`, enquiryID); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	committed := status.Committed()
	for _, s := range sessions {
		if err := insertSession(ctx, tx, &enquiryID, nil, s, committed); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE enquiries SET updated_at = now() WHERE id = $1`, enquiryID); err != nil {
		return fmt.Errorf("failed to touch enquiry: %w", err)
	}

	return tx.Commit(ctx)
}

// minuteOfDay converts a zero-padded "HH:MM" string to minutes since
// midnight. Values reaching this layer already passed session validation.
func minuteOfDay(clock string) int {
	if len(clock) != 5 {
		return 0
	}
	hours := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minutes := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return hours*60 + minutes
}
