package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	return body
}

func TestSuccess(t *testing.T) {
	rr := httptest.NewRecorder()

	response.Success(rr, http.StatusCreated, response.IDResponse{ID: 7})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":7}}`, rr.Body.String())
}

func TestError(t *testing.T) {
	t.Run("AppError With Detail", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.NotFoundError("Job not found").WithDetail("id 9"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		body := decode(t, rr)
		assert.False(t, body.Success)
		assert.Equal(t, appErrors.ErrCodeNotFound, body.Error.Code)
		assert.Equal(t, "Job not found", body.Error.Message)
		assert.Equal(t, []string{"id 9"}, body.Error.Details)
	})

	t.Run("AppError Wrapping Validation Errors", func(t *testing.T) {
		rr := httptest.NewRecorder()
		type sample struct {
			Name string `validate:"required"`
		}
		err := validator.New().Struct(sample{})

		response.Error(rr, appErrors.ValidationError("Validation failed").WithError(err))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, []string{"Field Name is required"}, body.Error.Details)
	})

	t.Run("Plain Error", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, appErrors.ErrCodeInternal, body.Error.Code)
		assert.NotContains(t, rr.Body.String(), "boom")
	})
}
