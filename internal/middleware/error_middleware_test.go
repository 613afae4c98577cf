package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"listing not found", apperrors.ErrListingNotFound, http.StatusNotFound},
		{"match not found", apperrors.ErrMatchNotFound, http.StatusNotFound},
		{"policy denial", apperrors.NewForbiddenError("only donors can commit"), http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"revoked refresh token", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"duplicate commitment", apperrors.ErrAlreadyCommitted, http.StatusConflict},
		{"item already matched", apperrors.ErrItemAlreadyMatched, http.StatusConflict},
		{"item closed", apperrors.ErrItemClosed, http.StatusConflict},
		{"already fulfilled", apperrors.ErrAlreadyFulfilled, http.StatusConflict},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict},
		{"validation failure", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"bad request", apperrors.NewBadRequestError("profile has no registered location"), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("HandleAPIError(%v): expected status %d, got %d", tt.err, tt.want, w.Code)
			}
		})
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	wrapped := errors.Join(errors.New("context"), apperrors.ErrSchoolNotFound)
	HandleAPIError(c, wrapped)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected wrapped not-found error to map to 404, got %d", w.Code)
	}
}
