// Package notifications provides the in-app notification inbox module.
package notifications

import (
	"venuedesk_backend/internal/events"
	apphttp "venuedesk_backend/internal/http"
	"venuedesk_backend/internal/notifications/handler"
	"venuedesk_backend/internal/notifications/repository"
	"venuedesk_backend/internal/notifications/service"
	"venuedesk_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the notifications domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new notifications module and subscribes its inbox
// writers to the event bus.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	svc.SubscribeAll(bus)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "notifications"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/notifications"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
