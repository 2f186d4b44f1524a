// Package enquiries provides the enquiry pipeline domain module.
package enquiries

import (
	"venuedesk_backend/internal/enquiries/handler"
	"venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/enquiries/service"
	"venuedesk_backend/internal/events"
	apphttp "venuedesk_backend/internal/http"
	"venuedesk_backend/platform/config"
	"venuedesk_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the enquiries domain module.
type Module struct {
	handler      *handler.Handler
	service      *service.Service
	repo         *repository.Repository
	availability *service.AvailabilityService
}

// NewModule creates a new enquiries module with all dependencies wired.
// The availability checker starts with the enquiries store only; the
// bookings source is attached by the composition root once it exists.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, cfg config.IntakeConfig) *Module {
	repo := repository.New(pool)
	availability := service.NewAvailabilityService(repo)
	svc := service.New(repo, availability, bus, log, cfg.GetPhoneDefaultRegion())
	h := handler.New(svc)

	return &Module{
		handler:      h,
		service:      svc,
		repo:         repo,
		availability: availability,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "enquiries"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for cross-module wiring (conversion
// transactions and availability snapshots).
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// Availability returns the shared conflict checker.
func (m *Module) Availability() *service.AvailabilityService {
	return m.availability
}

// AddSnapshotSource attaches another store to the availability checker.
func (m *Module) AddSnapshotSource(src service.SnapshotSource) {
	m.availability.AddSource(src)
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/enquiries"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
