// Package followups provides the follow-up reminders domain module.
package followups

import (
	"context"

	enqrepo "venuedesk_backend/internal/enquiries/repository"
	enqtransport "venuedesk_backend/internal/enquiries/transport"
	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/followups/handler"
	"venuedesk_backend/internal/followups/repository"
	"venuedesk_backend/internal/followups/service"
	apphttp "venuedesk_backend/internal/http"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the follow-ups domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates a new follow-ups module with all dependencies wired.
// reminders may be nil when no scheduler backend is configured.
func NewModule(pool *pgxpool.Pool, enquiries *enqrepo.Repository, reminders service.ReminderScheduler, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, enquiries, reminders, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "followups"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// PendingReader adapts the repository to the enquiries module's narrow
// follow-up lookup, so withdrawing an enquiry can surface open reminders.
func (m *Module) PendingReader() *PendingReader {
	return &PendingReader{repo: m.repo}
}

// PendingReader implements the enquiries service's FollowUpReader port.
type PendingReader struct {
	repo *repository.Repository
}

// ListPendingForEnquiry returns the open follow-ups of one enquiry.
func (p *PendingReader) ListPendingForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]enqtransport.PendingFollowUp, error) {
	items, err := p.repo.ListPendingByEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	out := make([]enqtransport.PendingFollowUp, len(items))
	for i, f := range items {
		out[i] = enqtransport.PendingFollowUp{
			ID:      f.ID,
			DueDate: f.FollowUpDate.Format("2006-01-02"),
			Notes:   f.Notes,
		}
	}
	return out, nil
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/followups"))
	m.handler.RegisterEnquiryRoutes(ctx.V1.Group("/enquiries"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
