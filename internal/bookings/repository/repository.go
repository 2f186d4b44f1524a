// Package repository provides data access for bookings and their sessions.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	enqrepo "venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Booking is the persistence model for one confirmed booking.
type Booking struct {
	ID               uuid.UUID
	BookingNumber    string
	EnquiryID        uuid.UUID
	ClientName       string
	Status           scheduling.Status
	ContractSignedAt time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Repository provides access to booking rows and their owned sessions.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new bookings repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `id, booking_number, enquiry_id, client_name, status,
	contract_signed_at, created_at, updated_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.EnquiryID,
		&b.ClientName,
		&b.Status,
		&b.ContractSignedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// CreateFromEnquiry materializes the booking in one transaction: the booking
// number is drawn from the sequence, the source enquiry advances to booked
// and releases its sessions, then the booking's sessions enter the exclusion
// constraint. A constraint hit from a concurrent commit surfaces as
// ErrWriteConflict.
func (r *Repository) CreateFromEnquiry(ctx context.Context, booking Booking, sessions []scheduling.Session, enquiryVersion int) (Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var number string
	err = tx.QueryRow(ctx,
		`SELECT 'BKG-' || to_char(now(), 'YYYY') || '-' || lpad(nextval('booking_number_seq')::text, 5, '0')`,
	).Scan(&number)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to assign booking number: %w", err)
	}

	query := `
		INSERT INTO bookings (id, booking_number, enquiry_id, client_name, status, contract_signed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns

	saved, err := scanBooking(tx.QueryRow(ctx, query,
		booking.ID,
		number,
		booking.EnquiryID,
		booking.ClientName,
		scheduling.StatusBooked,
		booking.ContractSignedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_enquiry_id_key" {
			return Booking{}, ErrAlreadyConverted
		}
		return Booking{}, fmt.Errorf("failed to create booking: %w", asWriteConflict(err))
	}

	// Release the enquiry's sessions before the booking's rows land, so the
	// two owners of the same windows never collide with each other.
	if err := enqrepo.MarkBooked(ctx, tx, booking.EnquiryID, enquiryVersion); err != nil {
		if errors.Is(err, enqrepo.ErrWriteConflict) {
			return Booking{}, ErrWriteConflict
		}
		return Booking{}, err
	}

	for _, s := range sessions {
		if err := enqrepo.InsertOwnedSession(ctx, tx, nil, &saved.ID, s, true); err != nil {
			if errors.Is(err, enqrepo.ErrWriteConflict) {
				return Booking{}, ErrWriteConflict
			}
			return Booking{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("failed to commit booking: %w", asWriteConflict(err))
	}

	return saved, nil
}

// GetByID returns one booking or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// GetByEnquiryID returns the booking materialized from an enquiry.
func (r *Repository) GetByEnquiryID(ctx context.Context, enquiryID uuid.UUID) (Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE enquiry_id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, enquiryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, fmt.Errorf("failed to get booking by enquiry: %w", err)
	}
	return b, nil
}

// List returns all bookings, newest first.
func (r *Repository) List(ctx context.Context) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	items := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return items, nil
}

// ListSessions returns the sessions owned by a booking.
func (r *Repository) ListSessions(ctx context.Context, bookingID uuid.UUID) ([]scheduling.Session, error) {
	query := `SELECT id, name, label, venue, session_date, start_time, end_time,
		pax_count, special_instructions
		FROM sessions WHERE booking_id = $1 ORDER BY session_date, start_time`

	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking sessions: %w", err)
	}
	defer rows.Close()

	items := make([]scheduling.Session, 0)
	for rows.Next() {
		var s scheduling.Session
		err := rows.Scan(&s.ID, &s.Name, &s.Label, &s.Venue, &s.Date,
			&s.StartTime, &s.EndTime, &s.PaxCount, &s.SpecialInstructions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking session: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking sessions: %w", err)
	}

	return items, nil
}

// ReplaceSessions swaps the booking's session set atomically. New rows stay
// inside the exclusion constraint while the booking is active.
func (r *Repository) ReplaceSessions(ctx context.Context, bookingID uuid.UUID, sessions []scheduling.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status scheduling.Status
	err = tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock booking: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to clear booking sessions: %w", err)
	}

	committed := status == scheduling.StatusBooked
	for _, s := range sessions {
		if err := enqrepo.InsertOwnedSession(ctx, tx, nil, &bookingID, s, committed); err != nil {
			if errors.Is(err, enqrepo.ErrWriteConflict) {
				return ErrWriteConflict
			}
			return err
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE bookings SET updated_at = now() WHERE id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to touch booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session replacement: %w", asWriteConflict(err))
	}
	return nil
}

// UpdateStatus moves the booking to cancelled or closed and withdraws its
// sessions from the exclusion constraint.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, target scheduling.Status) (Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bookings SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns

	saved, err := scanBooking(tx.QueryRow(ctx, query, id, target))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("failed to update booking status: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET committed = FALSE, updated_at = now() WHERE booking_id = $1`, id); err != nil {
		return Booking{}, fmt.Errorf("failed to withdraw booking sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("failed to commit booking status: %w", err)
	}

	return saved, nil
}

// SnapshotRecords returns every active booking with its sessions attached as
// classifier input. Cancelled and closed bookings never conflict.
func (r *Repository) SnapshotRecords(ctx context.Context) ([]scheduling.Record, error) {
	query := `
		SELECT b.id, b.client_name, b.status, s.id, s.name, s.label, s.venue,
			s.session_date, s.start_time, s.end_time, s.pax_count, s.special_instructions
		FROM bookings b
		JOIN sessions s ON s.booking_id = b.id
		WHERE b.status = 'booked'
		ORDER BY b.id, s.session_date, s.start_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot bookings: %w", err)
	}
	defer rows.Close()

	records := make([]scheduling.Record, 0)
	var current *scheduling.Record
	for rows.Next() {
		var (
			rec scheduling.Record
			s   scheduling.Session
		)
		err := rows.Scan(&rec.ID, &rec.ClientName, &rec.Status, &s.ID, &s.Name,
			&s.Label, &s.Venue, &s.Date, &s.StartTime, &s.EndTime, &s.PaxCount,
			&s.SpecialInstructions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		if current == nil || current.ID != rec.ID {
			rec.Kind = scheduling.RecordBooking
			records = append(records, rec)
			current = &records[len(records)-1]
		}
		current.Sessions = append(current.Sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot: %w", err)
	}

	return records, nil
}

func asWriteConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" || pgErr.Code == "23505" {
			return ErrWriteConflict
		}
	}
	return err
}
