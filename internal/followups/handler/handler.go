// Package handler exposes the follow-ups HTTP endpoints.
package handler

import (
	"net/http"

	"venuedesk_backend/internal/followups/service"
	"venuedesk_backend/internal/followups/transport"
	"venuedesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for follow-ups.
type Handler struct {
	svc *service.Service
}

// New creates a new follow-ups handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the routes rooted at /followups.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/due", h.ListDue)
	rg.PATCH("/:id/complete", h.Complete)
}

// RegisterEnquiryRoutes registers the enquiry-scoped routes.
func (h *Handler) RegisterEnquiryRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/followups", h.Create)
	rg.GET("/:id/followups", h.ListForEnquiry)
	rg.POST("/:id/followups/complete-all", h.CompleteAll)
}

// Create handles POST /enquiries/:id/followups.
func (h *Handler) Create(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.CreateFollowUpRequest
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

// ListForEnquiry handles GET /enquiries/:id/followups.
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

// ListDue handles GET /followups/due.
func (h *Handler) ListDue(c *gin.Context) {
	result, err := h.svc.ListDue(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Complete handles PATCH /followups/:id/complete.
func (h *Handler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Complete(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// CompleteAll handles POST /enquiries/:id/followups/complete-all.
func (h *Handler) CompleteAll(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.CompleteAll(c.Request.Context(), id)
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
