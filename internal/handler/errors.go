package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// errorResponse is the body of every non-2xx response. Details carries the
// raw routing payload when the routing service's answer was unusable.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// badRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body, bad path parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// writeError maps a service error onto an HTTP status and error body.
// Anything unrecognised is logged and returned as a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var extErr *domain.ExternalServiceError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &extErr):
		body := errorResponse{Error: extErr.Message}
		if len(extErr.Payload) > 0 {
			body.Details = extErr.Payload
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: unwrapMessage(err, domain.ErrValidation)})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "trip not found"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: unwrapMessage(err, domain.ErrConflict)})
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// unwrapMessage extracts the human-readable part that follows a wrapped
// sentinel, e.g.
// "service.TripService.Update: validation error: dropoff_location is required"
// becomes "dropoff_location is required".
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
		return msg[i+len(prefix):]
	}
	return msg
}
