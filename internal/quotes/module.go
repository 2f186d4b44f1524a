// Package quotes provides the quotations domain module.
package quotes

import (
	enqrepo "venuedesk_backend/internal/enquiries/repository"
	apphttp "venuedesk_backend/internal/http"
	"venuedesk_backend/internal/quotes/handler"
	"venuedesk_backend/internal/quotes/repository"
	"venuedesk_backend/internal/quotes/service"
	"venuedesk_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the quotations domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new quotations module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, enquiries *enqrepo.Repository, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, enquiries, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/quotes"))
	m.handler.RegisterEnquiryRoutes(ctx.V1.Group("/enquiries"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
