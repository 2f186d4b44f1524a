// Package service maintains the in-app notification inbox fed by domain
// events.
package service

import (
	"context"
	"errors"
	"fmt"

	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/notifications/repository"
	"venuedesk_backend/internal/notifications/transport"
	"venuedesk_backend/platform/apperr"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultListLimit = 100

// Service provides business logic for notifications.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a new notifications service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// SubscribeAll registers the inbox writers for every event of interest.
func (s *Service) SubscribeAll(bus events.Bus) {
	bus.Subscribe(events.FollowUpDue{}.EventName(), events.HandlerFunc(s.onFollowUpDue))
	bus.Subscribe(events.BookingConfirmed{}.EventName(), events.HandlerFunc(s.onBookingConfirmed))
	bus.Subscribe(events.EnquiryStatusChanged{}.EventName(), events.HandlerFunc(s.onStatusChanged))
}

func (s *Service) onFollowUpDue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.FollowUpDue)
	if !ok {
		return nil
	}
	return s.repo.Create(ctx, repository.Notification{
		ID:        uuid.New(),
		Kind:      "followup_due",
		Title:     "Follow-up due",
		Body:      followUpBody(e),
		EnquiryID: &e.EnquiryID,
	})
}

func (s *Service) onBookingConfirmed(ctx context.Context, event events.Event) error {
	e, ok := event.(events.BookingConfirmed)
	if !ok {
		return nil
	}
	return s.repo.Create(ctx, repository.Notification{
		ID:        uuid.New(),
		Kind:      "booking_confirmed",
		Title:     "Booking confirmed",
		Body:      fmt.Sprintf("%s for %s", e.BookingNumber, e.ClientName),
		EnquiryID: &e.EnquiryID,
	})
}

func (s *Service) onStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.EnquiryStatusChanged)
	if !ok {
		return nil
	}
	body := fmt.Sprintf("%s moved from %s to %s", e.ClientName, e.From, e.To)
	if e.AdvisoryBypassed {
		body += " (advisory conflict acknowledged)"
	}
	return s.repo.Create(ctx, repository.Notification{
		ID:        uuid.New(),
		Kind:      "status_changed",
		Title:     "Enquiry status changed",
		Body:      body,
		EnquiryID: &e.EnquiryID,
	})
}

// List returns the most recent notifications.
func (s *Service) List(ctx context.Context) ([]transport.NotificationResponse, error) {
	items, err := s.repo.List(ctx, defaultListLimit)
	if err != nil {
		s.log.DatabaseError("notifications.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list notifications", err)
	}

	out := make([]transport.NotificationResponse, len(items))
	for i, n := range items {
		out[i] = toResponse(n)
	}
	return out, nil
}

// MarkRead flips one notification to read.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*transport.NotificationResponse, error) {
	n, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("notification not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to mark notification read", err)
	}

	resp := toResponse(n)
	return &resp, nil
}

func followUpBody(e events.FollowUpDue) string {
	body := "Follow-up due " + e.DueDate.Format("2006-01-02")
	if e.Notes != "" {
		body += ": " + e.Notes
	}
	return body
}

func toResponse(n repository.Notification) transport.NotificationResponse {
	return transport.NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		EnquiryID: n.EnquiryID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
