package service

import (
	"context"
	"testing"
	"time"

	"venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/enquiries/transport"
	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/scheduling"
	"venuedesk_backend/platform/apperr"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
)

type stubStore struct {
	enquiry       repository.Enquiry
	sessions      []scheduling.Session
	statusUpdates []repository.StatusUpdate
}

func (s *stubStore) Create(ctx context.Context, enquiry repository.Enquiry, sessions []scheduling.Session) (repository.Enquiry, error) {
	return enquiry, nil
}

func (s *stubStore) GetByID(ctx context.Context, id uuid.UUID) (repository.Enquiry, error) {
	return s.enquiry, nil
}

func (s *stubStore) GetWithSessions(ctx context.Context, id uuid.UUID) (repository.Enquiry, []scheduling.Session, error) {
	return s.enquiry, s.sessions, nil
}

func (s *stubStore) List(ctx context.Context) ([]repository.Enquiry, error) {
	return []repository.Enquiry{s.enquiry}, nil
}

func (s *stubStore) Assign(ctx context.Context, id, salespersonID uuid.UUID) (repository.Enquiry, error) {
	return s.enquiry, nil
}

func (s *stubStore) ReplaceSessions(ctx context.Context, id uuid.UUID, sessions []scheduling.Session) error {
	s.sessions = sessions
	return nil
}

func (s *stubStore) UpdateStatus(ctx context.Context, id uuid.UUID, update repository.StatusUpdate) (repository.Enquiry, error) {
	s.statusUpdates = append(s.statusUpdates, update)
	saved := s.enquiry
	saved.Status = update.Target
	saved.Version++
	return saved, nil
}

func (s *stubStore) Reopen(ctx context.Context, id uuid.UUID, notes *string) (repository.Enquiry, error) {
	saved := s.enquiry
	saved.Status = scheduling.StatusOngoing
	return saved, nil
}

func (s *stubStore) AddActivity(ctx context.Context, activity repository.Activity) error {
	return nil
}

func (s *stubStore) ListActivity(ctx context.Context, enquiryID uuid.UUID) ([]repository.Activity, error) {
	return nil, nil
}

type cleanChecker struct{}

func (cleanChecker) Evaluate(ctx context.Context, candidates []scheduling.Session, ownerID uuid.UUID) (scheduling.Report, error) {
	return scheduling.Report{}, nil
}

type stubFollowUpReader struct {
	pending []transport.PendingFollowUp
	err     error
}

func (r stubFollowUpReader) ListPendingForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]transport.PendingFollowUp, error) {
	return r.pending, r.err
}

func newTestService(store *stubStore) *Service {
	return New(store, cleanChecker{}, events.NewInMemoryBus(nil), logger.New("development"), "IN")
}

func pipelineEnquiry(status scheduling.Status) repository.Enquiry {
	return repository.Enquiry{
		ID:         uuid.New(),
		ClientName: "Meera Pillai",
		Status:     status,
		EventDate:  time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Version:    1,
	}
}

func TestStatusChangeRefusesDirectBooked(t *testing.T) {
	store := &stubStore{enquiry: pipelineEnquiry(scheduling.StatusConverted)}
	svc := newTestService(store)

	_, err := svc.RequestStatusChange(context.Background(), store.enquiry.ID,
		transport.StatusChangeRequest{Target: "booked"})
	if err == nil {
		t.Fatal("a status edit must never land on booked; only conversion creates a booking")
	}
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("got kind %v, want forbidden", apperr.GetKind(err))
	}
	if len(store.statusUpdates) != 0 {
		t.Errorf("status was written %d times, want no write", len(store.statusUpdates))
	}
}

func TestStatusChangeSurfacesPendingFollowUps(t *testing.T) {
	pending := []transport.PendingFollowUp{{ID: uuid.New(), DueDate: "2026-09-01"}}

	cases := []struct {
		name    string
		current scheduling.Status
		req     transport.StatusChangeRequest
	}{
		{
			name:    "forward transition",
			current: scheduling.StatusOngoing,
			req:     transport.StatusChangeRequest{Target: "converted"},
		},
		{
			name:    "withdrawing transition",
			current: scheduling.StatusOngoing,
			req:     transport.StatusChangeRequest{Target: "lost", LossReason: "budget"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{enquiry: pipelineEnquiry(tc.current)}
			svc := newTestService(store)
			svc.SetFollowUpReader(stubFollowUpReader{pending: pending})

			resp, err := svc.RequestStatusChange(context.Background(), store.enquiry.ID, tc.req)
			if err != nil {
				t.Fatalf("RequestStatusChange: %v", err)
			}
			if len(resp.PendingFollowUps) != 1 {
				t.Fatalf("got %d pending follow-ups, want 1", len(resp.PendingFollowUps))
			}
			if resp.PendingFollowUps[0].DueDate != "2026-09-01" {
				t.Errorf("got due date %q, want the reader's entry", resp.PendingFollowUps[0].DueDate)
			}
		})
	}
}

func TestStatusChangeToleratesFollowUpReaderFailure(t *testing.T) {
	store := &stubStore{enquiry: pipelineEnquiry(scheduling.StatusOngoing)}
	svc := newTestService(store)
	svc.SetFollowUpReader(stubFollowUpReader{err: context.DeadlineExceeded})

	resp, err := svc.RequestStatusChange(context.Background(), store.enquiry.ID,
		transport.StatusChangeRequest{Target: "converted"})
	if err != nil {
		t.Fatalf("a follow-up lookup failure must not fail the transition: %v", err)
	}
	if resp.PendingFollowUps != nil {
		t.Errorf("got follow-ups %v, want none after a failed lookup", resp.PendingFollowUps)
	}
	if resp.Enquiry.Status != "converted" {
		t.Errorf("got status %q, want converted", resp.Enquiry.Status)
	}
}
