// Package transport defines the request and response types for the
// follow-ups HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateFollowUpRequest schedules a reminder for an enquiry. When
// RepeatFollowUp is set, the interval expands into a bounded series capped
// at the repeat end date and the enquiry's event date.
type CreateFollowUpRequest struct {
	FollowUpDate   string `json:"followUpDate" binding:"required,dateonly"`
	FollowUpTime   string `json:"followUpTime" binding:"omitempty,clock"`
	Notes          string `json:"notes"`
	RepeatFollowUp bool   `json:"repeatFollowUp"`
	RepeatInterval string `json:"repeatInterval" binding:"omitempty,oneof=daily weekly biweekly monthly"`
	RepeatEndDate  string `json:"repeatEndDate" binding:"omitempty,dateonly"`
}

// FollowUpResponse is one reminder as returned to clients. DueState is
// derived from the server clock: upcoming, due or overdue.
type FollowUpResponse struct {
	ID             uuid.UUID  `json:"id"`
	EnquiryID      uuid.UUID  `json:"enquiryId"`
	FollowUpDate   string     `json:"followUpDate"`
	FollowUpTime   string     `json:"followUpTime"`
	Notes          string     `json:"notes,omitempty"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	RepeatFollowUp bool       `json:"repeatFollowUp"`
	RepeatInterval string     `json:"repeatInterval,omitempty"`
	RepeatEndDate  string     `json:"repeatEndDate,omitempty"`
	DueState       string     `json:"dueState"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// BulkCompleteResponse reports how many reminders were closed.
type BulkCompleteResponse struct {
	Completed int `json:"completed"`
}
