// Package handler exposes the quotations HTTP endpoints.
package handler

import (
	"net/http"

	"venuedesk_backend/internal/quotes/service"
	"venuedesk_backend/internal/quotes/transport"
	"venuedesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for quotations.
type Handler struct {
	svc *service.Service
}

// New creates a new quotations handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the routes rooted at /quotes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", h.Calculate)
}

// RegisterEnquiryRoutes registers the enquiry-scoped routes.
func (h *Handler) RegisterEnquiryRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/quotes", h.Create)
	rg.GET("/:id/quotes", h.ListForEnquiry)
}

// Calculate handles POST /quotes/calculate.
func (h *Handler) Calculate(c *gin.Context) {
	var req transport.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	httpkit.OK(c, h.svc.Preview(req))
}

// Create handles POST /enquiries/:id/quotes.
func (h *Handler) Create(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// ListForEnquiry handles GET /enquiries/:id/quotes.
func (h *Handler) ListForEnquiry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListForEnquiry(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid enquiry id", nil)
		return uuid.Nil, false
	}
	return id, true
}
