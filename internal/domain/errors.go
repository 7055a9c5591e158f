package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing location, malformed coordinates).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a status transition is not allowed from the
// trip's current status, or the status changed underneath the caller.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrExternalService marks failures where the routing service answered but
// the answer could not be used (empty, or not a recognized route shape).
var ErrExternalService = errors.New("external service error")

// ExternalServiceError carries the raw routing payload alongside the message
// so callers can return it for diagnostics. It matches ErrExternalService
// under errors.Is.
type ExternalServiceError struct {
	Message string
	Payload map[string]any
}

func (e *ExternalServiceError) Error() string { return e.Message }

func (e *ExternalServiceError) Unwrap() error { return ErrExternalService }
