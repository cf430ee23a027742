package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope[T any] struct {
	Success bool         `json:"success" doc:"Whether the request succeeded"`
	Message string       `json:"message,omitempty" doc:"Human-readable status message"`
	Data    *T           `json:"data,omitempty" doc:"Response payload"`
	Errors  []FieldError `json:"errors,omitempty" doc:"Field-level validation errors"`
}

// envelope wraps data in a successful envelope.
func envelope[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

// envelopeMsg wraps data in a successful envelope with a status message.
func envelopeMsg[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: &data}
}

// writeError writes an enveloped error response outside the huma pipeline
// (middleware and router fallbacks).
func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	body := Envelope[struct{}]{Success: false, Message: message}
	if err := json.MarshalWrite(w, body); err != nil && logger != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}
