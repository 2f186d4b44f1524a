// Package bookings provides the confirmed-bookings domain module.
package bookings

import (
	"venuedesk_backend/internal/bookings/handler"
	"venuedesk_backend/internal/bookings/repository"
	"venuedesk_backend/internal/bookings/service"
	enqrepo "venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/events"
	apphttp "venuedesk_backend/internal/http"
	"venuedesk_backend/internal/scheduling"
	"venuedesk_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the bookings domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates a new bookings module with all dependencies wired. The
// checker must be the shared availability service so conversions and enquiry
// transitions evaluate against one snapshot.
func NewModule(pool *pgxpool.Pool, enquiries *enqrepo.Repository, checker scheduling.AvailabilityChecker, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, enquiries, checker, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "bookings"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for availability wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/bookings"))
	m.handler.RegisterConversionRoute(ctx.V1.Group("/enquiries"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
