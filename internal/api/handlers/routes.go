package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/entity-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
)

// CRUDHandler is implemented by every EntityHandler instantiation.
type CRUDHandler interface {
	Create() http.HandlerFunc
	List() http.HandlerFunc
	GetByID() http.HandlerFunc
	Update() http.HandlerFunc
	Patch() http.HandlerFunc
	Delete() http.HandlerFunc
}

// Guard wraps a route handler with the checks for its entitlement.
type Guard func(resource string, entitlement models.Entitlement, next http.Handler) http.Handler

type Route struct {
	Method      string
	Path        string
	Entitlement models.Entitlement
}

// Routes lists the CRUD routes of resource in registration order.
func Routes(resource string) []Route {
	base := "/api/" + resource
	item := base + "/{id}"

	return []Route{
		{Method: http.MethodPost, Path: base, Entitlement: models.EntitlementCreate},
		{Method: http.MethodGet, Path: base, Entitlement: models.EntitlementRead},
		{Method: http.MethodGet, Path: item, Entitlement: models.EntitlementRead},
		{Method: http.MethodDelete, Path: item, Entitlement: models.EntitlementDelete},
		{Method: http.MethodPut, Path: item, Entitlement: models.EntitlementUpdate},
		{Method: http.MethodPatch, Path: item, Entitlement: models.EntitlementUpdate},
	}
}

// Register mounts the CRUD routes of resource on mux, each behind guard.
func Register(mux *http.ServeMux, resource string, h CRUDHandler, guard Guard) {

	handlers := []http.HandlerFunc{h.Create(), h.List(), h.GetByID(), h.Delete(), h.Update(), h.Patch()}

	for i, route := range Routes(resource) {
		mux.Handle(route.Method+" "+route.Path, guard(resource, route.Entitlement, handlers[i]))
	}
}

// Secured is the production guard: rate limit, then authenticate, then authorize.
func Secured(auth *middleware.AuthMiddleware, authorizer *middleware.Authorizer, rateLimit func(http.Handler) http.Handler) Guard {
	return func(resource string, entitlement models.Entitlement, next http.Handler) http.Handler {
		var handler http.Handler = auth.Authenticate(authorizer.Require(resource, entitlement, next))

		if rateLimit != nil {
			handler = rateLimit(handler)
		}

		return handler
	}
}
