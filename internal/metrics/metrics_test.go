package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeSuccess, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeRejected, metrics.Outcome(appErrors.NotFoundError("missing")))
	assert.Equal(t, metrics.OutcomeError, metrics.Outcome(appErrors.DatabaseError("down")))
	assert.Equal(t, metrics.OutcomeError, metrics.Outcome(errors.New("boom")))
}

func TestMiddleware(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/job/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := metrics.Middleware(mux)

	metrics.RecordOperation("job", "GetById", nil)

	// Act
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/job/42", nil))

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	assert.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `http_requests_total{code="418",method="GET",path="GET /api/job/{id}"} 1`)
	assert.Contains(t, scrape.Body.String(), `entity_operations_total{operation="GetById",outcome="success",resource="job"} 1`)
}
