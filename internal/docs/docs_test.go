package docs_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/entity-api/internal/docs"
	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func testRoutes(resource string) []docs.Operation {
	return []docs.Operation{
		{Method: http.MethodPost, Path: "/api/" + resource, Entitlement: "create"},
		{Method: http.MethodGet, Path: "/api/" + resource, Entitlement: "read"},
		{Method: http.MethodGet, Path: "/api/" + resource + "/{id}", Entitlement: "read"},
		{Method: http.MethodPatch, Path: "/api/" + resource + "/{id}", Entitlement: "update"},
	}
}

func TestBuild(t *testing.T) {
	// Arrange
	resources := []docs.Resource{
		{Name: "job", KeyType: "integer", KeyFormat: "int64"},
		{Name: "organization", KeyType: "string", KeyFormat: "uuid"},
	}

	// Act
	doc := docs.Build("Entity API", "1.0.0", resources, testRoutes)

	// Assert
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Entity API", doc.Info.Title)
	require.NotNil(t, doc.Paths)
	assert.Len(t, doc.Paths.Paths, 4)
	assert.Len(t, doc.Tags, 2)

	item, ok := doc.Paths.Paths["/api/organization/{id}"]
	require.True(t, ok)
	require.NotNil(t, item.Get)
	require.NotNil(t, item.Patch)
	assert.Nil(t, item.Delete)

	params := item.Get.Parameters
	require.NotEmpty(t, params)
	assert.Equal(t, "id", params[0].Name)
	assert.Equal(t, "path", params[0].In)
	assert.Equal(t, "uuid", params[0].Format)

	create := doc.Paths.Paths["/api/job"].Post
	require.NotNil(t, create)
	assert.Equal(t, "post_job", create.ID)
	assert.Contains(t, create.Responses.StatusCodeResponses, http.StatusCreated)
	assert.Contains(t, doc.Definitions, "response.APIResponse")
}

func TestRegister(t *testing.T) {
	// Arrange
	resources := []docs.Resource{{Name: "job", KeyType: "integer", KeyFormat: "int64"}}

	// Act
	require.NoError(t, docs.Register("Entity API", "1.0.0", resources, testRoutes))
	require.NoError(t, docs.Register("Entity API", "1.0.1", resources, testRoutes))

	// Assert
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc spec.Swagger
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "1.0.1", doc.Info.Version)
	assert.Contains(t, doc.Paths.Paths, "/api/job/{id}")
	require.NotNil(t, doc.Paths.Paths["/api/job/{id}"].Get)
	assert.Equal(t, "int64", doc.Paths.Paths["/api/job/{id}"].Get.Parameters[0].Format)
}
