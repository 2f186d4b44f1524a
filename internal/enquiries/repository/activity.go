package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity is one audit entry on an enquiry's timeline. Metadata carries
// the structured details of the action, including advisory overrides.
type Activity struct {
	ID           uuid.UUID
	EnquiryID    uuid.UUID
	ActorID      *uuid.UUID
	ActivityType string
	Metadata     map[string]any
	CreatedAt    time.Time
}

// AddActivity appends one entry to the enquiry's activity log.
func (r *Repository) AddActivity(ctx context.Context, a Activity) error {
	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO enquiry_activity (id, enquiry_id, actor_id, activity_type, metadata)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.EnquiryID, a.ActorID, a.ActivityType, metadata)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

// ListActivity returns the enquiry's activity log, newest first.
func (r *Repository) ListActivity(ctx context.Context, enquiryID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, enquiry_id, actor_id, activity_type, metadata, created_at
		FROM enquiry_activity
		WHERE enquiry_id = $1
		ORDER BY created_at DESC`, enquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	items := make([]Activity, 0)
	for rows.Next() {
		var (
			a   Activity
			raw []byte
		)
		if err := rows.Scan(&a.ID, &a.EnquiryID, &a.ActorID, &a.ActivityType, &raw, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &a.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode activity metadata: %w", err)
			}
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}

	return items, nil
}
