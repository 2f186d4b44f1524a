// Package handler exposes the enquiries HTTP endpoints.
package handler

import (
	"net/http"

	"venuedesk_backend/internal/enquiries/service"
	"venuedesk_backend/internal/enquiries/transport"
	"venuedesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for enquiries.
type Handler struct {
	svc *service.Service
}

// New creates a new enquiries handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the enquiry routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/conflicts/preview", h.PreviewConflicts)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id/sessions", h.ReplaceSessions)
	rg.PATCH("/:id/status", h.ChangeStatus)
	rg.POST("/:id/reopen", h.Reopen)
	rg.POST("/:id/assign", h.Assign)
	rg.GET("/:id/activity", h.ListActivity)
}

// Create handles POST /enquiries.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// List handles GET /enquiries.
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /enquiries/:id.
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

// ReplaceSessions handles PUT /enquiries/:id/sessions.
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

// PreviewConflicts handles POST /enquiries/conflicts/preview.
func (h *Handler) PreviewConflicts(c *gin.Context) {
	var req transport.ConflictPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.EvaluateConflicts(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ChangeStatus handles PATCH /enquiries/:id/status.
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

	result, err := h.svc.RequestStatusChange(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Reopen handles POST /enquiries/:id/reopen.
func (h *Handler) Reopen(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Reopen(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Assign handles POST /enquiries/:id/assign.
func (h *Handler) Assign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Assign(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ListActivity handles GET /enquiries/:id/activity.
func (h *Handler) ListActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListActivity(c.Request.Context(), id)
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
