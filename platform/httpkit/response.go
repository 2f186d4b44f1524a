// Package httpkit is the shared HTTP surface for the API modules: the
// response envelope, error mapping and common middleware.
package httpkit

import (
	"errors"
	"net/http"

	"venuedesk_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorEnvelope is the single error shape every endpoint returns. Details
// carries structured context such as field errors or a conflict report.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// OK sends the payload with 200.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created sends the payload with 201, for resources created by the request.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Error sends an error envelope with the given status.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorEnvelope{Error: message, Details: details})
}

// HandleError writes the error envelope for err and reports whether one was
// written. Typed *apperr.Error values, wrapped or not, choose their status
// from the kind; anything else is treated as a bad request.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), ErrorEnvelope{
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return true
	}

	c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: err.Error()})
	return true
}
