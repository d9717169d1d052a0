package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/entity-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/entity-api/internal/cache"
	appErrors "github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/metrics"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	repository "github.com/aaravmahajanofficial/entity-api/internal/repositories"
	"github.com/aaravmahajanofficial/entity-api/internal/utils"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aaravmahajanofficial/entity-api/internal/services"

// EntityService is the per-entity business layer behind the CRUD handlers.
type EntityService[T models.Entity[K], K models.Key] interface {
	Create(ctx context.Context, entity *T) (K, error)
	Get(ctx context.Context, query *models.ListQuery) (*models.Page[T], error)
	// GetByID returns *T, or a map holding only the requested fields when fields is non-empty.
	GetByID(ctx context.Context, id K, fields []string) (any, error)
	Update(ctx context.Context, id K, entity *T) (bool, error)
	Patch(ctx context.Context, id K, patch jsonpatch.Patch) (bool, error)
	Delete(ctx context.Context, id K) (bool, error)
}

type entityService[T models.Entity[K], K models.Key] struct {
	resource  string
	repo      repository.EntityRepository[T, K]
	cache     cache.Cache
	validate  *validator.Validate
	sanitizer *utils.Sanitizer
	tracer    trace.Tracer
}

func NewEntityService[T models.Entity[K], K models.Key](
	resource string,
	repo repository.EntityRepository[T, K],
	cacheClient cache.Cache,
	validate *validator.Validate,
	sanitizer *utils.Sanitizer,
) EntityService[T, K] {
	return &entityService[T, K]{
		resource:  resource,
		repo:      repo,
		cache:     cacheClient,
		validate:  validate,
		sanitizer: sanitizer,
		tracer:    otel.Tracer(tracerName),
	}
}

func (s *entityService[T, K]) Create(ctx context.Context, entity *T) (id K, err error) {

	ctx, finish := s.start(ctx, "Create")
	defer func() { finish(err) }()

	// sequence keys come from the database
	var zero K
	if models.SerialKey[K]() && (*entity).GetID() != zero {
		return id, appErrors.BadRequestError("Id is assigned by the server")
	}

	if err = s.prepare(entity); err != nil {
		return id, err
	}

	if err = s.repo.Create(ctx, entity); err != nil {
		return id, s.mapError(err, fmt.Sprintf("Failed to create %s", s.resource))
	}

	id = (*entity).GetID()
	middleware.LoggerFromContext(ctx).Info("Entity created",
		slog.String("resource", s.resource),
		slog.String("id", models.FormatKey(id)),
	)

	return id, nil
}

func (s *entityService[T, K]) Get(ctx context.Context, query *models.ListQuery) (page *models.Page[T], err error) {

	ctx, finish := s.start(ctx, "Get")
	defer func() { finish(err) }()

	if query.PageNumber < 1 {
		query.PageNumber = models.DefaultPageNumber
	}
	if query.PageSize < 1 {
		query.PageSize = models.DefaultPageSize
	}
	if query.PageNumber > models.MaxPageNumber(query.PageSize) {
		return nil, appErrors.InvalidQueryError("Page number invalid.")
	}

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, s.mapError(err, fmt.Sprintf("Failed to list %s", s.resource))
	}

	return models.NewPage(items, total, query.PageNumber, query.PageSize), nil
}

func (s *entityService[T, K]) GetByID(ctx context.Context, id K, fields []string) (result any, err error) {

	ctx, finish := s.start(ctx, "GetById")
	defer func() { finish(err) }()

	logger := middleware.LoggerFromContext(ctx)
	key := s.cacheKey(id)

	var entity T
	found := false

	if s.cache != nil {
		if found, err = s.cache.Get(ctx, key, &entity); err != nil {
			logger.Warn("Cache read failed, falling back to database", slog.String("key", key), slog.Any("error", err))
			found = false
		}
	}

	if !found {
		stored, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, s.mapError(err, fmt.Sprintf("Failed to retrieve %s", s.resource))
		}
		entity = *stored

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, entity, 0); err != nil {
				logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
			}
		}
	}

	if len(fields) == 0 {
		return &entity, nil
	}

	return selectFields(&entity, fields)
}

func (s *entityService[T, K]) Update(ctx context.Context, id K, entity *T) (ok bool, err error) {

	ctx, finish := s.start(ctx, "Update")
	defer func() { finish(err) }()

	if (*entity).GetID() != id {
		return false, appErrors.BadRequestError("Mismatched Id")
	}

	if err = s.prepare(entity); err != nil {
		return false, err
	}

	if err = s.repo.Update(ctx, entity); err != nil {
		return false, s.mapError(err, fmt.Sprintf("Failed to update %s", s.resource))
	}

	s.invalidate(ctx, id)

	return true, nil
}

func (s *entityService[T, K]) Patch(ctx context.Context, id K, patch jsonpatch.Patch) (ok bool, err error) {

	ctx, finish := s.start(ctx, "Patch")
	defer func() { finish(err) }()

	_, err = s.repo.Modify(ctx, id, func(entity *T) error {

		original, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", s.resource, err)
		}

		patched, err := patch.Apply(original)
		if err != nil {
			return appErrors.InvalidPatchError("Patch could not be applied").WithDetail(err.Error()).WithError(err)
		}

		var next T
		if err := json.Unmarshal(patched, &next); err != nil {
			return appErrors.InvalidPatchError("Patched document is not a valid " + s.resource).WithDetail(err.Error()).WithError(err)
		}

		if next.GetID() != id {
			return appErrors.InvalidPatchError("Patch must not change the id")
		}

		if err := s.prepare(&next); err != nil {
			return err
		}

		*entity = next

		return nil
	})
	if err != nil {
		return false, s.mapError(err, fmt.Sprintf("Failed to patch %s", s.resource))
	}

	s.invalidate(ctx, id)

	return true, nil
}

func (s *entityService[T, K]) Delete(ctx context.Context, id K) (ok bool, err error) {

	ctx, finish := s.start(ctx, "Delete")
	defer func() { finish(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		return false, s.mapError(err, fmt.Sprintf("Failed to delete %s", s.resource))
	}

	s.invalidate(ctx, id)

	return true, nil
}

// prepare sanitizes tagged text and validates the result.
func (s *entityService[T, K]) prepare(entity *T) error {

	s.sanitizer.Struct(entity)

	if err := utils.ValidateStruct(s.validate, entity); err != nil {
		return appErrors.ValidationError("Validation failed").WithError(err)
	}

	return nil
}

func (s *entityService[T, K]) invalidate(ctx context.Context, id K) {
	if s.cache == nil {
		return
	}

	key := s.cacheKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *entityService[T, K]) cacheKey(id K) string {
	return cache.Key(s.resource, models.FormatKey(id))
}

func (s *entityService[T, K]) mapError(err error, message string) error {

	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.NotFoundError(fmt.Sprintf("%s not found", s.resource)).WithError(err)
	case errors.Is(err, repository.ErrDuplicateKey):
		return appErrors.DuplicateEntryError(fmt.Sprintf("%s already exists", s.resource)).WithError(err)
	case errors.Is(err, repository.ErrInvalidQuery):
		return appErrors.InvalidQueryError("Query invalid.").WithDetail(err.Error()).WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}

// start opens the operation span and returns the function that closes it and counts the outcome.
func (s *entityService[T, K]) start(ctx context.Context, operation string) (context.Context, func(error)) {

	ctx, span := s.tracer.Start(ctx, s.resource+"."+operation,
		trace.WithAttributes(attribute.String("entity.resource", s.resource)),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.RecordOperation(s.resource, operation, err)
		span.End()
	}
}

// selectFields projects the JSON form of entity onto the requested property names, ignoring case.
func selectFields(entity any, fields []string) (map[string]json.RawMessage, error) {

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, appErrors.InternalError("Failed to encode entity").WithError(err)
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, appErrors.InternalError("Failed to encode entity").WithError(err)
	}

	selected := make(map[string]json.RawMessage, len(fields))

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		matched := false
		for name, value := range all {
			if strings.EqualFold(name, field) {
				selected[name] = value
				matched = true
				break
			}
		}

		if !matched {
			return nil, appErrors.BadRequestError(fmt.Sprintf("Field '%s' does not exist", field))
		}
	}

	return selected, nil
}
