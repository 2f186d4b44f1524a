// Package transport defines the response types for the notifications
// HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse is one inbox entry as returned to clients.
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	EnquiryID *uuid.UUID `json:"enquiryId,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"createdAt"`
}
