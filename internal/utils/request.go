package utils

import (
	"net/http"

	"github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/aaravmahajanofficial/entity-api/internal/utils/response"
)

// ParseBody decodes the JSON body into dest, writing a 400 on failure.
func ParseBody(r *http.Request, w http.ResponseWriter, dest any) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()).WithError(err))
		return false
	}

	return true
}
