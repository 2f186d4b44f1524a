// Package handler exposes the bookings HTTP endpoints.
package handler

import (
	"net/http"

	"venuedesk_backend/internal/bookings/service"
	"venuedesk_backend/internal/bookings/transport"
	"venuedesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for bookings.
type Handler struct {
	svc *service.Service
}

// New creates a new bookings handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the booking routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id/sessions", h.ReplaceSessions)
	rg.PATCH("/:id/status", h.ChangeStatus)
}

// RegisterConversionRoute registers the conversion endpoint under the
// enquiries path, since the operation is addressed by enquiry.
func (h *Handler) RegisterConversionRoute(rg *gin.RouterGroup) {
	rg.POST("/:id/convert", h.Convert)
}

// Convert handles POST /enquiries/:id/convert.
func (h *Handler) Convert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Convert(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// List handles GET /bookings.
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /bookings/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ReplaceSessions handles PUT /bookings/:id/sessions.
func (h *Handler) ReplaceSessions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ReplaceSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.ReplaceSessions(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ChangeStatus handles PATCH /bookings/:id/status.
func (h *Handler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.ChangeStatus(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
