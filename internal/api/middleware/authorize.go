package middleware

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/entity-api/internal/authz"
	"github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"github.com/aaravmahajanofficial/entity-api/internal/utils/response"
)

// Authorizer gates handlers on an entitlement for a resource. It must run after Authenticate.
type Authorizer struct {
	decisions authz.DecisionProvider
}

func NewAuthorizer(decisions authz.DecisionProvider) *Authorizer {
	return &Authorizer{decisions: decisions}
}

func (a *Authorizer) Require(resource string, entitlement models.Entitlement, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		allowed, err := a.decisions.Allowed(claims.Roles, resource, entitlement)
		if err != nil {
			logger.Error("Authorization check failed", slog.String("resource", resource), slog.Any("error", err))
			response.Error(w, errors.InternalError("Authorization check failed").WithError(err))
			return
		}

		if !allowed {
			logger.Warn("Access denied",
				slog.String("resource", resource),
				slog.String("entitlement", string(entitlement)),
				slog.Any("roles", claims.Roles),
			)
			response.Error(w, errors.ForbiddenError("You do not have permission to perform this action"))
			return
		}

		next.ServeHTTP(w, r)
	}
}
