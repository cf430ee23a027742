package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/watpato/profile-server/internal/errors"
	"github.com/watpato/profile-server/internal/store"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field" doc:"Offending field, as named in the request body"`
	Message string `json:"message" doc:"What is wrong with the field"`
}

// APIError is a custom error type that implements huma.StatusError.
// It renders domain errors in the same envelope shape as success responses.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Success bool         `json:"success" doc:"Always false for errors"`
	Message string       `json:"message" doc:"Human-readable error message"`
	Errors  []FieldError `json:"errors,omitempty" doc:"Field-level validation errors"`
	Detail  string       `json:"detail,omitempty" doc:"Underlying error, development mode only"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to render domain errors.
// Call this after creating the huma.API but before registering routes.
// When devMode is true, internal error detail is included in 5xx bodies.
func RegisterErrorHandler(devMode bool) {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Message: domainErr.Message,
					Errors:  fieldErrors(domainErr.Details),
				}
			}

			// Store errors that escaped the service layer carry their
			// own HTTP code (not-found from health probes and the like).
			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				return &APIError{
					status:  storeErr.HTTPCode(),
					Message: storeErr.Message,
				}
			}
		}

		// huma reports schema violations as 422; this API uses 400.
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		apiErr := &APIError{status: status, Message: message}

		for _, err := range errs {
			var detail *huma.ErrorDetail
			if errors.As(err, &detail) {
				apiErr.Errors = append(apiErr.Errors, FieldError{
					Field:   detail.Location,
					Message: detail.Message,
				})
			}
		}

		if status >= http.StatusInternalServerError {
			apiErr.Message = "Internal server error"
			if devMode && len(errs) > 0 {
				apiErr.Detail = errs[0].Error()
			}
		}

		return apiErr
	}
}

// fieldErrors converts validation detail maps into ordered field errors.
func fieldErrors(details any) []FieldError {
	byField, ok := details.(map[string]string)
	if !ok || len(byField) == 0 {
		return nil
	}

	out := make([]FieldError, 0, len(byField))
	for field, message := range byField {
		out = append(out, FieldError{Field: field, Message: message})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
