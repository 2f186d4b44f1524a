package httpkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"venuedesk_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestHandleErrorMapsKindToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NotFound("enquiry not found"), http.StatusNotFound},
		{"forbidden", apperr.Forbidden("transition not allowed"), http.StatusForbidden},
		{"conflict", apperr.Conflict("slot already taken"), http.StatusConflict},
		{"unavailable", apperr.Unavailable("availability data unreachable"), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("request status change: %w", apperr.Conflict("slot already taken")), http.StatusConflict},
		{"untyped", fmt.Errorf("no such venue"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := testContext(t)

			if !HandleError(c, tc.err) {
				t.Fatal("HandleError returned false for a non-nil error")
			}
			if w.Code != tc.status {
				t.Errorf("got status %d, want %d", w.Code, tc.status)
			}

			var body ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if body.Error == "" {
				t.Error("envelope carries no error message")
			}
		})
	}
}

func TestHandleErrorIgnoresNil(t *testing.T) {
	c, w := testContext(t)

	if HandleError(c, nil) {
		t.Error("HandleError wrote a response for a nil error")
	}
	if w.Body.Len() != 0 {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestCreatedStatus(t *testing.T) {
	c, w := testContext(t)

	Created(c, map[string]string{"id": "ENQ-1"})

	if w.Code != http.StatusCreated {
		t.Errorf("got status %d, want %d", w.Code, http.StatusCreated)
	}
}
