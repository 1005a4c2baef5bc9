// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"net/http"

	"lavadero/internal/apperr"
)

// MensajeInterno is the only text a client ever sees for a storage failure.
const MensajeInterno = "Error interno del servidor"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *APIError {
	return &APIError{Detail: "Error de validacion", Code: string(apperr.KindValidation), Fields: fields}
}

// FromError maps an error onto its HTTP status and client-safe envelope.
// Untyped errors are treated as storage failures.
func FromError(err error) (int, *APIError) {
	e, ok := apperr.As(err)
	if !ok {
		return http.StatusInternalServerError, &APIError{Detail: MensajeInterno, Code: string(apperr.KindStorage)}
	}
	body := &APIError{Detail: e.Message, Code: string(e.Kind)}
	switch e.Kind {
	case apperr.KindValidation:
		if len(e.Fields) > 0 {
			body.Fields = e.Fields
		}
		return http.StatusBadRequest, body
	case apperr.KindDuplicate:
		return http.StatusConflict, body
	case apperr.KindNotFound:
		return http.StatusNotFound, body
	default:
		return http.StatusInternalServerError, &APIError{Detail: MensajeInterno, Code: string(apperr.KindStorage)}
	}
}
