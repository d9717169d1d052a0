package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/entity-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/filter"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	service "github.com/aaravmahajanofficial/entity-api/internal/services"
	"github.com/aaravmahajanofficial/entity-api/internal/utils"
	"github.com/aaravmahajanofficial/entity-api/internal/utils/response"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

const DefaultMaxPageSize = 1000

// EntityHandler serves the CRUD endpoints of one entity type. Routes are
// mounted under /api/{resource}; the key in {id} is an integer or a UUID depending on K.
type EntityHandler[T models.Entity[K], K models.Key] struct {
	service     service.EntityService[T, K]
	maxPageSize int
}

func NewEntityHandler[T models.Entity[K], K models.Key](entityService service.EntityService[T, K], maxPageSize int) *EntityHandler[T, K] {
	if maxPageSize < 1 {
		maxPageSize = DefaultMaxPageSize
	}

	return &EntityHandler[T, K]{service: entityService, maxPageSize: maxPageSize}
}

// Create binds the body and returns 201 with the new key.
func (h *EntityHandler[T, K]) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var entity T
		if !utils.ParseBody(r, w, &entity) {
			logger.Warn("Invalid create input")
			return
		}

		id, err := h.service.Create(r.Context(), &entity)
		if err != nil {
			logger.Error("Failed to create entity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, response.IDResponse{ID: id})
	}
}

// List validates paging, sorting and filters before calling the service.
func (h *EntityHandler[T, K]) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		params := r.URL.Query()

		// paging is checked before anything else is parsed
		pageSize, ok := positiveInt(params.Get("pageSize"), models.DefaultPageSize)
		if !ok || pageSize > h.maxPageSize {
			response.Error(w, errors.BadRequestError("Page size invalid."))
			return
		}

		pageNumber, ok := positiveInt(params.Get("pageNumber"), models.DefaultPageNumber)
		if !ok || pageNumber > models.MaxPageNumber(pageSize) {
			response.Error(w, errors.BadRequestError("Page number invalid."))
			return
		}

		sortOrder := models.SortOrder(strings.ToLower(strings.TrimSpace(params.Get("sortOrder"))))
		switch sortOrder {
		case "":
			sortOrder = models.SortOrderAsc
		case models.SortOrderAsc, models.SortOrderDesc:
		default:
			response.Error(w, errors.BadRequestError("Sort order invalid."))
			return
		}

		criteria, err := filter.Parse(params.Get("filters"))
		if err != nil {
			logger.Warn("Invalid filters", slog.Any("error", err))
			response.Error(w, errors.InvalidQueryError("Filters invalid.").WithDetail(err.Error()).WithError(err))
			return
		}

		query := &models.ListQuery{
			Filters:    criteria,
			SearchTerm: params.Get("searchTerm"),
			PageNumber: pageNumber,
			PageSize:   pageSize,
			SortField:  params.Get("sortField"),
			SortOrder:  sortOrder,
		}

		page, err := h.service.Get(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list entities", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

// GetByID returns one entity, optionally projected to the fields query list.
func (h *EntityHandler[T, K]) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := h.pathKey(w, r)
		if !ok {
			return
		}

		var fields []string
		for _, field := range strings.Split(r.URL.Query().Get("fields"), ",") {
			if field = strings.TrimSpace(field); field != "" {
				fields = append(fields, field)
			}
		}

		entity, err := h.service.GetByID(r.Context(), id, fields)
		if err != nil {
			if !errors.IsNotFound(err) {
				logger.Error("Failed to get entity", slog.Any("error", err))
			}
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, entity)
	}
}

func (h *EntityHandler[T, K]) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := h.pathKey(w, r)
		if !ok {
			return
		}

		deleted, err := h.service.Delete(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to delete entity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, response.StatusResponse{Status: deleted})
	}
}

// Update replaces an entity; the body key must equal the route key.
func (h *EntityHandler[T, K]) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := h.pathKey(w, r)
		if !ok {
			return
		}

		var entity T
		if !utils.ParseBody(r, w, &entity) {
			logger.Warn("Invalid update input")
			return
		}

		if entity.GetID() != id {
			logger.Warn("Route and body keys differ",
				slog.String("route_id", models.FormatKey(id)),
				slog.String("body_id", models.FormatKey(entity.GetID())),
			)
			response.Error(w, errors.BadRequestError("Mismatched Id"))
			return
		}

		updated, err := h.service.Update(r.Context(), id, &entity)
		if err != nil {
			logger.Warn("Failed to update entity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, response.StatusResponse{Status: updated})
	}
}

// Patch applies an RFC 6902 document.
func (h *EntityHandler[T, K]) Patch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := h.pathKey(w, r)
		if !ok {
			return
		}

		body, err := utils.ReadBody(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithError(err))
			return
		}

		body = bytes.TrimSpace(body)
		if len(body) == 0 || bytes.Equal(body, []byte("null")) {
			response.Error(w, errors.BadRequestError("Patch document is missing."))
			return
		}

		patch, err := jsonpatch.DecodePatch(body)
		if err != nil {
			logger.Warn("Undecodable patch document", slog.Any("error", err))
			response.Error(w, errors.InvalidPatchError("Patch document is invalid.").WithDetail(err.Error()).WithError(err))
			return
		}

		patched, err := h.service.Patch(r.Context(), id, patch)
		if err != nil {
			logger.Warn("Failed to patch entity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, response.StatusResponse{Status: patched})
	}
}

func (h *EntityHandler[T, K]) pathKey(w http.ResponseWriter, r *http.Request) (K, bool) {

	id, err := models.ParseKey[K](r.PathValue("id"))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid id").WithDetail(err.Error()))
		return id, false
	}

	return id, true
}

// positiveInt parses an optional query value; absent means fallback, anything below 1 is rejected.
func positiveInt(raw string, fallback int) (int, bool) {
	if raw == "" {
		return fallback, true
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return 0, false
	}

	return v, true
}
