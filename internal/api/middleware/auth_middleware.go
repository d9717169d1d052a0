package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"github.com/aaravmahajanofficial/entity-api/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok && claims != nil
}

// Authenticate accepts HS256 bearer tokens signed with the configured key.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, errors.BadRequestError("unexpected signing method")
			}

			return m.jwtKey, nil
		})

		if appErr, ok := errors.IsAppError(err); ok {
			response.Error(w, appErr)
			return
		}

		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if !token.Valid {
			logger.Warn("Invalid token")
			response.Error(w, errors.UnauthorizedError("Invalid token"))
			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Token expired"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(
			slog.String("userId", claims.UserID.String()),
			slog.Any("roles", claims.Roles),
		)
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		requestScopedLogger.Debug("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
