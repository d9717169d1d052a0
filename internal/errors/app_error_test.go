package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *appErrors.AppError
		code       string
		statusCode int
	}{
		{"Validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"BadRequest", appErrors.BadRequestError("bad"), appErrors.ErrCodeBadRequest, http.StatusBadRequest},
		{"NotFound", appErrors.NotFoundError("missing"), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"Unauthorized", appErrors.UnauthorizedError("who"), appErrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Forbidden", appErrors.ForbiddenError("no"), appErrors.ErrCodeForbidden, http.StatusForbidden},
		{"Internal", appErrors.InternalError("boom"), appErrors.ErrCodeInternal, http.StatusInternalServerError},
		{"Database", appErrors.DatabaseError("db"), appErrors.ErrCodeDatabaseError, http.StatusInternalServerError},
		{"Duplicate", appErrors.DuplicateEntryError("dup"), appErrors.ErrCodeDuplicateEntry, http.StatusConflict},
		{"TooManyRequests", appErrors.TooManyRequestsError("slow"), appErrors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{"InvalidPatch", appErrors.InvalidPatchError("patch"), appErrors.ErrCodeInvalidPatch, http.StatusBadRequest},
		{"InvalidQuery", appErrors.InvalidQueryError("query"), appErrors.ErrCodeInvalidQuery, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.statusCode, tc.err.StatusCode)
		})
	}
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := appErrors.DatabaseError("Failed to fetch job").WithError(cause).WithDetail("jobs table")

	wrapped := fmt.Errorf("service: %w", appErr)

	assert.Equal(t, "Failed to fetch job", appErr.Error())
	assert.ErrorIs(t, wrapped, cause)

	found, ok := appErrors.IsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "jobs table", found.Detail)

	_, ok = appErrors.IsAppError(cause)
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, appErrors.IsNotFound(fmt.Errorf("wrap: %w", appErrors.NotFoundError("gone"))))
	assert.False(t, appErrors.IsNotFound(appErrors.DatabaseError("db")))
	assert.False(t, appErrors.IsNotFound(errors.New("plain")))
}

func TestAddValidationError(t *testing.T) {
	err := appErrors.AddValidationError("name", "is required")

	assert.Equal(t, appErrors.ErrCodeValidation, err.Code)
	assert.Equal(t, "Invalid field 'name': is required", err.Message)
}
