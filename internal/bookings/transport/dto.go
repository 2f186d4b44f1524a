// Package transport defines the request and response types for the
// bookings HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// ConvertRequest asks to materialize a booking from an enquiry. Both flags
// must be true; rejections name each failed precondition individually.
type ConvertRequest struct {
	ContractSigned  bool `json:"contractSigned"`
	AdvanceReceived bool `json:"advanceReceived"`
	BypassAdvisory  bool `json:"bypassAdvisory"`
}

// SessionRequest is one session of a booking edit.
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

// ReplaceSessionsRequest swaps the full session set of a booking.
type ReplaceSessionsRequest struct {
	Sessions       []SessionRequest `json:"sessions" binding:"required,min=1,dive"`
	BypassAdvisory bool             `json:"bypassAdvisory"`
}

// StatusChangeRequest moves a booking to cancelled or closed.
type StatusChangeRequest struct {
	Target string `json:"target" binding:"required"`
	Reason string `json:"reason"`
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

// BookingResponse is the full booking representation.
type BookingResponse struct {
	ID               uuid.UUID         `json:"id"`
	BookingNumber    string            `json:"bookingNumber"`
	EnquiryID        uuid.UUID         `json:"enquiryId"`
	ClientName       string            `json:"clientName"`
	Status           string            `json:"status"`
	ContractSignedAt time.Time         `json:"contractSignedAt"`
	Sessions         []SessionResponse `json:"sessions,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}
