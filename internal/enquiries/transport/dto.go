// Package transport defines the request and response types for the
// enquiries HTTP surface.
package transport

import (
	"time"

	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
)

// SessionRequest is one requested event session.
type SessionRequest struct {
	Name                string `json:"name" binding:"required"`
	Label               string `json:"label"`
	Venue               string `json:"venue" binding:"required"`
	Date                string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime           string `json:"startTime" binding:"required"`
	EndTime             string `json:"endTime" binding:"required"`
	PaxCount            int    `json:"paxCount" binding:"required,gt=0"`
	SpecialInstructions string `json:"specialInstructions"`
}

// CreateEnquiryRequest captures a new client enquiry with its sessions.
type CreateEnquiryRequest struct {
	ClientName   string           `json:"clientName" binding:"required"`
	ClientPhone  string           `json:"clientPhone" binding:"required"`
	ClientEmail  string           `json:"clientEmail" binding:"omitempty,email"`
	EventDate    string           `json:"eventDate" binding:"required"` // YYYY-MM-DD
	EventEndDate string           `json:"eventEndDate"`
	Notes        string           `json:"notes"`
	Sessions     []SessionRequest `json:"sessions" binding:"required,min=1,dive"`
}

// ReplaceSessionsRequest swaps the full session set of an enquiry.
type ReplaceSessionsRequest struct {
	Sessions []SessionRequest `json:"sessions" binding:"required,min=1,dive"`
}

// ConflictPreviewRequest evaluates candidate sessions without writing.
type ConflictPreviewRequest struct {
	EnquiryID *uuid.UUID       `json:"enquiryId"`
	Sessions  []SessionRequest `json:"sessions" binding:"required,min=1,dive"`
}

// StatusChangeRequest asks for one status transition. BypassAdvisory is a
// one-shot acknowledgement; it applies to this request only.
type StatusChangeRequest struct {
	Target         string `json:"target" binding:"required"`
	LossReason     string `json:"lossReason"`
	ClosureReason  string `json:"closureReason"`
	Notes          string `json:"notes"`
	FollowUpDate   string `json:"followUpDate"` // YYYY-MM-DD
	BypassAdvisory bool   `json:"bypassAdvisory"`
}

// ReopenRequest returns a lost or closed enquiry to ongoing.
type ReopenRequest struct {
	Reason string `json:"reason" binding:"required"`
	Notes  string `json:"notes"`
}

// AssignRequest hands the enquiry to a salesperson.
type AssignRequest struct {
	SalespersonID uuid.UUID `json:"salespersonId" binding:"required"`
}

// SessionResponse is one session as returned to clients.
type SessionResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Label               string    `json:"label,omitempty"`
	Venue               string    `json:"venue"`
	Date                string    `json:"date"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	PaxCount            int       `json:"paxCount"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
}

// EnquiryResponse is the full enquiry representation.
type EnquiryResponse struct {
	ID               uuid.UUID         `json:"id"`
	ClientName       string            `json:"clientName"`
	ClientPhone      string            `json:"clientPhone"`
	ClientEmail      string            `json:"clientEmail,omitempty"`
	EventDate        string            `json:"eventDate"`
	EventEndDate     string            `json:"eventEndDate,omitempty"`
	Status           string            `json:"status"`
	AssignmentStatus string            `json:"assignmentStatus"`
	SalespersonID    *uuid.UUID        `json:"salespersonId,omitempty"`
	FollowUpDate     string            `json:"followUpDate,omitempty"`
	LossReason       string            `json:"lossReason,omitempty"`
	ClosureReason    string            `json:"closureReason,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Version          int               `json:"version"`
	Sessions         []SessionResponse `json:"sessions,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// StatusChangeResponse carries the updated enquiry plus the conflict report
// the transition was evaluated against, when one was produced.
type StatusChangeResponse struct {
	Enquiry          EnquiryResponse    `json:"enquiry"`
	Report           *scheduling.Report `json:"conflictReport,omitempty"`
	AdvisoryBypassed bool               `json:"advisoryBypassed,omitempty"`
	PendingFollowUps []PendingFollowUp  `json:"pendingFollowUps,omitempty"`
}

// PendingFollowUp summarizes a follow-up still open after a status change.
type PendingFollowUp struct {
	ID      uuid.UUID `json:"id"`
	DueDate string    `json:"dueDate"`
	Notes   string    `json:"notes,omitempty"`
}

// ActivityResponse is one entry from the enquiry's audit timeline.
type ActivityResponse struct {
	ID           uuid.UUID      `json:"id"`
	ActorID      *uuid.UUID     `json:"actorId,omitempty"`
	ActivityType string         `json:"activityType"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
