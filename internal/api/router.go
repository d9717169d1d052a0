// Package api wires every registered entity type into one HTTP handler.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/entity-api/internal/api/handlers"
	"github.com/aaravmahajanofficial/entity-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/entity-api/internal/authz"
	"github.com/aaravmahajanofficial/entity-api/internal/cache"
	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"github.com/aaravmahajanofficial/entity-api/internal/docs"
	"github.com/aaravmahajanofficial/entity-api/internal/metrics"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	repository "github.com/aaravmahajanofficial/entity-api/internal/repositories"
	service "github.com/aaravmahajanofficial/entity-api/internal/services"
	"github.com/aaravmahajanofficial/entity-api/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

const (
	Title   = "Entity API"
	Version = "1.0.0"
)

type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Cache     cache.Cache
	Decisions authz.DecisionProvider
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter repository.RateLimitRepository
	// Health serves /health when set.
	Health http.Handler
}

// shared collaborators handed to every registration
type wiring struct {
	deps      *Dependencies
	validate  *validator.Validate
	sanitizer *utils.Sanitizer
	guard     handlers.Guard
}

type registration func(mux *http.ServeMux, w *wiring) (docs.Resource, error)

// entity builds the repository, service and handler of one entity type and mounts its routes.
func entity[T models.Entity[K], K models.Key](resource string) registration {
	return func(mux *http.ServeMux, w *wiring) (docs.Resource, error) {

		repo, err := repository.NewEntityRepository[T, K](w.deps.DB)
		if err != nil {
			return docs.Resource{}, fmt.Errorf("failed to build %s repository: %w", resource, err)
		}

		svc := service.NewEntityService[T, K](resource, repo, w.deps.Cache, w.validate, w.sanitizer)
		handlers.Register(mux, resource, handlers.NewEntityHandler[T, K](svc, w.deps.Config.API.MaxPageSize), w.guard)

		keyType, keyFormat := models.KeyFormat[K]()

		return docs.Resource{Name: resource, KeyType: keyType, KeyFormat: keyFormat}, nil
	}
}

// Resources is the registration table: one entry per exposed entity type.
var Resources = []registration{
	entity[models.Job, int64]("job"),
	entity[models.Organization, uuid.UUID]("organization"),
	entity[models.Report, uuid.UUID]("report"),
	entity[models.Area, uuid.UUID]("area"),
	entity[models.Accounting, uuid.UUID]("accounting"),
	entity[models.AccountingXAccounting, int64]("accounting_x_accounting"),
	entity[models.AreaXEntity, uuid.UUID]("area_x_entity"),
}

// NewRouter mounts the CRUD routes of every resource plus the operational endpoints
// and returns the fully wrapped handler.
func NewRouter(deps *Dependencies) (http.Handler, error) {

	cfg := deps.Config

	var rateLimit func(http.Handler) http.Handler
	if deps.RateLimiter != nil && !cfg.RateConfig.Disabled {
		rateLimit = middleware.RateLimit(deps.RateLimiter)
	}

	w := &wiring{
		deps:      deps,
		validate:  validator.New(),
		sanitizer: utils.NewSanitizer(),
		guard: handlers.Secured(
			middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey)),
			middleware.NewAuthorizer(deps.Decisions),
			rateLimit,
		),
	}

	routerMux := http.NewServeMux()

	resources := make([]docs.Resource, 0, len(Resources))
	for _, register := range Resources {
		res, err := register(routerMux, w)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
		slog.Debug("Resource registered", slog.String("resource", res.Name))
	}

	if err := docs.Register(Title, Version, resources, operations); err != nil {
		return nil, fmt.Errorf("failed to build swagger document: %w", err)
	}

	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	routerMux.Handle("GET /metrics", metrics.Handler())
	if deps.Health != nil {
		routerMux.Handle("GET /health", deps.Health)
	}

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "entity-api")

	return handler, nil
}

func operations(resource string) []docs.Operation {
	routes := handlers.Routes(resource)

	ops := make([]docs.Operation, 0, len(routes))
	for _, route := range routes {
		ops = append(ops, docs.Operation{Method: route.Method, Path: route.Path, Entitlement: string(route.Entitlement)})
	}

	return ops
}
