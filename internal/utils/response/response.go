package response

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/entity-api/internal/errors"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// IDResponse is returned by create.
type IDResponse struct {
	ID any `json:"id"`
}

// StatusResponse is returned by update, patch and delete.
type StatusResponse struct {
	Status bool `json:"status"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	WriteJson(w, statusCode, response)
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse *ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		var validationErrs validator.ValidationErrors
		if stdErrors.As(appErr.Err, &validationErrs) {
			errorResponse.Details = FieldMessages(validationErrs)
		} else if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}

	}

	response := APIResponse{
		Success: false,
		Error:   errorResponse,
	}

	WriteJson(w, statusCode, response)
}

// ValidationError sends the list of field errors.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	errorResponse := &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: FieldMessages(errs),
	}

	WriteJson(w, http.StatusBadRequest, APIResponse{Success: false, Error: errorResponse})
}

func FieldMessages(errs validator.ValidationErrors) []string {

	var errMsgs []string

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field %s must be greater than or equal to %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("Field %s must be less than or equal to %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field %s must be one of [%s]", err.Field(), err.Param())
		case "alphanum":
			message = fmt.Sprintf("Field %s must be alphanumeric", err.Field())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)
	}

	return errMsgs
}
