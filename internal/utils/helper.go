package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var ErrEmptyBody = errors.New("request body cannot be empty")

func DecodeJSONBody(r *http.Request, dest any) error {

	body, err := ReadBody(r)
	if err != nil {
		return err
	}

	if len(body) == 0 {
		slog.Warn("Empty request body", slog.String("endpoint", r.URL.Path))
		return ErrEmptyBody
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Warn("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ReadBody(r *http.Request) ([]byte, error) {

	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("Failed to read request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return body, nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("validation error: %w", validationErrs)
		}

		return fmt.Errorf("unexpected validation error: %w", err)
	}

	return nil
}
