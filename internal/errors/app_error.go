package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type every layer hands to the response writer.
// StatusCode decides the HTTP status, Code is the stable machine-readable value.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeInvalidPatch      = "INVALID_PATCH"
	ErrCodeInvalidQuery      = "INVALID_QUERY"
	ErrCodeUnsupportedMedia  = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeResourceExhausted = "RESOURCE_EXHAUSTED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func InvalidPatchError(message string) *AppError {
	return NewAppError(ErrCodeInvalidPatch, message, http.StatusBadRequest)
}

func InvalidQueryError(message string) *AppError {
	return NewAppError(ErrCodeInvalidQuery, message, http.StatusBadRequest)
}

func ResourceExhaustedError(message string) *AppError {
	return NewAppError(ErrCodeResourceExhausted, message, http.StatusTooManyRequests)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// IsNotFound reports whether err carries a NOT_FOUND AppError anywhere in its chain.
func IsNotFound(err error) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == ErrCodeNotFound
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
