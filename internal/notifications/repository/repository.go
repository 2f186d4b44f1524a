// Package repository provides data access for the in-app notification inbox.
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

// ErrNotFound is returned when no notification matches the given ID.
var ErrNotFound = errors.New("notification not found")

// Notification is one inbox entry.
type Notification struct {
	ID        uuid.UUID
	Kind      string
	Title     string
	Body      string
	EnquiryID *uuid.UUID
	Read      bool
	CreatedAt time.Time
}

// Repository provides access to notification rows.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new notifications repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const notificationColumns = `id, kind, title, body, enquiry_id, read, created_at`

// Create inserts one notification.
func (r *Repository) Create(ctx context.Context, n Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, kind, title, body, enquiry_id)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.Kind, n.Title, n.Body, n.EnquiryID)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns the most recent notifications, unread and read alike.
func (r *Repository) List(ctx context.Context, limit int) ([]Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Body, &n.EnquiryID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return items, nil
}

// MarkRead flips one notification to read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) (Notification, error) {
	query := `
		UPDATE notifications SET read = TRUE
		WHERE id = $1
		RETURNING ` + notificationColumns

	var n Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Kind, &n.Title, &n.Body, &n.EnquiryID, &n.Read, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Notification{}, ErrNotFound
	}
	if err != nil {
		return Notification{}, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return n, nil
}
