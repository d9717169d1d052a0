package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aaravmahajanofficial/entity-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"github.com/google/uuid"
)

// CreateTestRequestWithContext builds a request carrying claims with the given roles and a quiet logger.
func CreateTestRequestWithContext(method, target, body string, roles []string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	claims := &models.Claims{UserID: uuid.New(), Email: "test@example.com", Roles: roles}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

// CreateTestRequestWithoutContext builds an anonymous request with a quiet logger.
func CreateTestRequestWithoutContext(method, target, body string, pathParams map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
