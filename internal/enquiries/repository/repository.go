// Package repository provides data access for enquiries and their sessions.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Enquiry is the persistence model for one client enquiry.
type Enquiry struct {
	ID               uuid.UUID
	ClientName       string
	ClientPhone      string
	ClientEmail      string
	EventDate        time.Time
	EventEndDate     *time.Time
	Status           scheduling.Status
	AssignmentStatus string
	SalespersonID    *uuid.UUID
	FollowUpDate     *time.Time
	LossReason       *string
	ClosureReason    *string
	Notes            *string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Repository provides access to enquiry rows and their owned sessions.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new enquiries repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const enquiryColumns = `id, client_name, client_phone, client_email, event_date, event_end_date,
	status, assignment_status, salesperson_id, follow_up_date, loss_reason, closure_reason,
	notes, version, created_at, updated_at`

func scanEnquiry(row pgx.Row) (Enquiry, error) {
	var e Enquiry
	err := row.Scan(
		&e.ID,
		&e.ClientName,
		&e.ClientPhone,
		&e.ClientEmail,
		&e.EventDate,
		&e.EventEndDate,
		&e.Status,
		&e.AssignmentStatus,
		&e.SalespersonID,
		&e.FollowUpDate,
		&e.LossReason,
		&e.ClosureReason,
		&e.Notes,
		&e.Version,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create inserts the enquiry and its sessions in one transaction.
func (r *Repository) Create(ctx context.Context, enquiry Enquiry, sessions []scheduling.Session) (Enquiry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Enquiry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO enquiries
			(id, client_name, client_phone, client_email, event_date, event_end_date,
			 status, assignment_status, salesperson_id, follow_up_date, notes)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + enquiryColumns

	saved, err := scanEnquiry(tx.QueryRow(ctx, query,
		enquiry.ID,
		enquiry.ClientName,
		enquiry.ClientPhone,
		enquiry.ClientEmail,
		enquiry.EventDate,
		enquiry.EventEndDate,
		enquiry.Status,
		enquiry.AssignmentStatus,
		enquiry.SalespersonID,
		enquiry.FollowUpDate,
		enquiry.Notes,
	))
	if err != nil {
		return Enquiry{}, fmt.Errorf("failed to create enquiry: %w", err)
	}

	for _, s := range sessions {
		if err := insertSession(ctx, tx, &enquiry.ID, nil, s, false); err != nil {
			return Enquiry{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Enquiry{}, fmt.Errorf("failed to commit enquiry: %w", err)
	}

	return saved, nil
}

// GetByID returns one enquiry or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = $1`

	e, err := scanEnquiry(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Enquiry{}, ErrNotFound
	}
	if err != nil {
		return Enquiry{}, fmt.Errorf("failed to get enquiry: %w", err)
	}
	return e, nil
}

// GetWithSessions returns the enquiry and its owned sessions.
func (r *Repository) GetWithSessions(ctx context.Context, id uuid.UUID) (Enquiry, []scheduling.Session, error) {
	enquiry, err := r.GetByID(ctx, id)
	if err != nil {
		return Enquiry{}, nil, err
	}

	sessions, err := r.ListSessions(ctx, id)
	if err != nil {
		return Enquiry{}, nil, err
	}

	return enquiry, sessions, nil
}

// List returns all enquiries ordered by event date.
func (r *Repository) List(ctx context.Context) ([]Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries ORDER BY event_date, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	items := make([]Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enquiries: %w", err)
	}

	return items, nil
}

// Assign sets the salesperson and flips the assignment status.
func (r *Repository) Assign(ctx context.Context, id, salespersonID uuid.UUID) (Enquiry, error) {
	query := `
		UPDATE enquiries
		SET salesperson_id = $2, assignment_status = 'assigned', updated_at = now()
		WHERE id = $1
		RETURNING ` + enquiryColumns

	e, err := scanEnquiry(r.pool.QueryRow(ctx, query, id, salespersonID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Enquiry{}, ErrNotFound
	}
	if err != nil {
		return Enquiry{}, fmt.Errorf("failed to assign enquiry: %w", err)
	}
	return e, nil
}

// SetFollowUpDate records the next follow-up date on the enquiry.
func (r *Repository) SetFollowUpDate(ctx context.Context, id uuid.UUID, date time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enquiries SET follow_up_date = $2, updated_at = now() WHERE id = $1`, id, date)
	if err != nil {
		return fmt.Errorf("failed to set follow-up date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
