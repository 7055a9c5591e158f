package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

type transitionResponse struct {
	Message string      `json:"message"`
	Trip    domain.Trip `json:"trip"`
}

// StartTrip handles POST /trips/{id}/start. The request body is ignored.
func (s *Server) StartTrip(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.trips.Start, "Trip started")
}

// CompleteTrip handles POST /trips/{id}/complete.
func (s *Server) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.trips.Complete, "Trip completed")
}

// CancelTrip handles POST /trips/{id}/cancel.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.trips.Cancel, "Trip cancelled")
}

func (s *Server) transition(
	w http.ResponseWriter,
	r *http.Request,
	move func(context.Context, uuid.UUID) (domain.Trip, error),
	message string,
) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := move(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transitionResponse{Message: message, Trip: trip})
}

// GetSummary handles GET /trips/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.trips.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetELDStatus handles GET /trips/{id}/eld_status.
func (s *Server) GetELDStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	status, err := s.trips.ELDStatus(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
