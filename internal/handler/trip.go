package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// tripRequest is the body of POST, PUT and PATCH /trips. Absent fields are
// nil; for PATCH they are left unchanged.
type tripRequest struct {
	CurrentLocation  *string            `json:"current_location"`
	PickupLocation   *string            `json:"pickup_location"`
	DropoffLocation  *string            `json:"dropoff_location"`
	CurrentCycleUsed *flexFloat         `json:"current_cycle_used"`
	HoursAlreadyUsed *flexFloat         `json:"hours_already_used"`
	DistanceKM       *flexFloat         `json:"distance_km"`
	DurationHours    *flexFloat         `json:"duration_hours"`
	Status           *domain.TripStatus `json:"status"`
}

func (b tripRequest) patch() domain.TripPatch {
	return domain.TripPatch{
		CurrentLocation:  b.CurrentLocation,
		PickupLocation:   b.PickupLocation,
		DropoffLocation:  b.DropoffLocation,
		CurrentCycleUsed: b.CurrentCycleUsed.ptr(),
		HoursAlreadyUsed: b.HoursAlreadyUsed.ptr(),
		DistanceKM:       b.DistanceKM.ptr(),
		DurationHours:    b.DurationHours.ptr(),
		Status:           b.Status,
	}
}

func (b tripRequest) hasLocations() bool {
	return b.CurrentLocation != nil && b.PickupLocation != nil && b.DropoffLocation != nil
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type tripListResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	created, err := s.trips.Create(r.Context(), body.patch().Apply(domain.Trip{}))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripListResponse{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ReplaceTrip handles PUT /trips/{id}. All three locations must be present;
// omitted numeric fields keep their stored values.
func (s *Server) ReplaceTrip(w http.ResponseWriter, r *http.Request) {
	s.updateTrip(w, r, true)
}

// PatchTrip handles PATCH /trips/{id}.
func (s *Server) PatchTrip(w http.ResponseWriter, r *http.Request) {
	s.updateTrip(w, r, false)
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request, full bool) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}
	if full && !body.hasLocations() {
		badRequest(w, "current_location, pickup_location and dropoff_location are required")
		return
	}

	updated, err := s.trips.Update(r.Context(), id, body.patch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
