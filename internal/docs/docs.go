// Package docs builds the swagger document of the CRUD routes and registers it with swag.
package docs

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-openapi/spec"
	"github.com/swaggo/swag"
)

const (
	apiResponseRef   = "#/definitions/response.APIResponse"
	errorResponseRef = "#/definitions/response.ErrorResponse"
	securityName     = "BearerAuth"
)

// Resource describes one registered entity for the document.
type Resource struct {
	Name      string
	KeyType   string
	KeyFormat string
}

type Operation struct {
	Method      string
	Path        string
	Entitlement string
}

type document struct {
	mu  sync.RWMutex
	doc string
}

func (d *document) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.doc
}

var (
	registered   = &document{doc: "{}"}
	registerOnce sync.Once
)

// Register publishes the document under swag.Name; later calls replace its content.
func Register(title, version string, resources []Resource, routes func(resource string) []Operation) error {

	raw, err := json.Marshal(Build(title, version, resources, routes))
	if err != nil {
		return err
	}

	registered.mu.Lock()
	registered.doc = string(raw)
	registered.mu.Unlock()

	registerOnce.Do(func() { swag.Register(swag.Name, registered) })

	return nil
}

// Build returns a swagger 2.0 document with one path group per resource.
func Build(title, version string, resources []Resource, routes func(resource string) []Operation) *spec.Swagger {

	paths := map[string]spec.PathItem{}
	tags := make([]spec.Tag, 0, len(resources))

	for _, res := range resources {
		tags = append(tags, spec.NewTag(res.Name, "", nil))

		for _, route := range routes(res.Name) {
			item := paths[route.Path]
			op := operation(res, route)

			switch route.Method {
			case http.MethodGet:
				item.Get = op
			case http.MethodPost:
				item.Post = op
			case http.MethodPut:
				item.Put = op
			case http.MethodPatch:
				item.Patch = op
			case http.MethodDelete:
				item.Delete = op
			}

			paths[route.Path] = item
		}
	}

	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			Info:     &spec.Info{InfoProps: spec.InfoProps{Title: title, Version: version}},
			BasePath: "/",
			Schemes:  []string{"http", "https"},
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			Tags:     tags,
			Paths:    &spec.Paths{Paths: paths},
			SecurityDefinitions: spec.SecurityDefinitions{
				securityName: spec.APIKeyAuth("Authorization", "header"),
			},
			Definitions: definitions(),
		},
	}
}

func definitions() spec.Definitions {

	errorResponse := new(spec.Schema).Typed("object", "").
		SetProperty("code", *spec.StringProperty()).
		SetProperty("message", *spec.StringProperty()).
		SetProperty("details", *spec.ArrayProperty(spec.StringProperty()))

	apiResponse := new(spec.Schema).Typed("object", "").
		SetProperty("success", *spec.BooleanProperty()).
		SetProperty("data", *new(spec.Schema).Typed("object", "")).
		SetProperty("error", *spec.RefSchema(errorResponseRef))

	return spec.Definitions{
		"response.ErrorResponse": *errorResponse,
		"response.APIResponse":   *apiResponse,
	}
}

func operation(res Resource, route Operation) *spec.Operation {

	item := strings.HasSuffix(route.Path, "{id}")
	success := http.StatusOK

	id := strings.ToLower(route.Method) + "_" + res.Name
	if item {
		id += "_by_id"
	}

	op := spec.NewOperation(id).
		WithTags(res.Name).
		WithSummary(route.Method + " " + res.Name).
		WithDescription("Requires the " + route.Entitlement + " entitlement on " + res.Name + ".").
		SecuredWith(securityName)

	if item {
		op.AddParam(spec.PathParam("id").Typed(res.KeyType, res.KeyFormat))
	}

	object := new(spec.Schema).Typed("object", "")

	switch route.Method {
	case http.MethodPost:
		success = http.StatusCreated
		op.AddParam(spec.BodyParam("entity", object).AsRequired())
	case http.MethodPut:
		op.AddParam(spec.BodyParam("entity", object).AsRequired())
	case http.MethodPatch:
		op.AddParam(spec.BodyParam("patch", spec.ArrayProperty(object)).AsRequired())
	case http.MethodGet:
		if item {
			op.AddParam(queryParam("fields", "string", "Comma separated properties to return"))
		} else {
			op.AddParam(queryParam("filters", "string", "JSON array of {PropertyName, Operator, Value}")).
				AddParam(queryParam("searchTerm", "string", "Free text search")).
				AddParam(queryParam("pageNumber", "integer", "Page number")).
				AddParam(queryParam("pageSize", "integer", "Page size")).
				AddParam(queryParam("sortField", "string", "Property to sort by")).
				AddParam(queryParam("sortOrder", "string", "asc or desc"))
		}
	}

	op.RespondsWith(success, response(success))
	for _, code := range []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
	} {
		op.RespondsWith(code, response(code))
	}

	return op
}

func response(code int) *spec.Response {
	return spec.NewResponse().
		WithDescription(http.StatusText(code)).
		WithSchema(spec.RefSchema(apiResponseRef))
}

func queryParam(name, typ, description string) *spec.Parameter {
	return spec.QueryParam(name).Typed(typ, "").WithDescription(description)
}
