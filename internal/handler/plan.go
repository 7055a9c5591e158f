package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// planRouteRequest is the body of POST /trips/plan_route.
type planRouteRequest struct {
	CurrentLocation  string    `json:"current_location"`
	PickupLocation   string    `json:"pickup_location"`
	DropoffLocation  string    `json:"dropoff_location"`
	CurrentCycleUsed flexFloat `json:"current_cycle_used"`
	HoursAlreadyUsed flexFloat `json:"hours_already_used"`
}

type planRouteResponse struct {
	Trip         domain.Trip         `json:"trip"`
	RouteSummary domain.RouteSummary `json:"route_summary"`
	Route        map[string]any      `json:"route"`
}

// PlanRoute handles POST /trips/plan_route.
// It looks up the route through the three locations, stores a PLANNED trip
// and returns it with the route summary and the raw routing payload.
func (s *Server) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var body planRouteRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	res, err := s.trips.PlanRoute(r.Context(), service.PlanRouteInput{
		CurrentLocation:  body.CurrentLocation,
		PickupLocation:   body.PickupLocation,
		DropoffLocation:  body.DropoffLocation,
		CurrentCycleUsed: float64(body.CurrentCycleUsed),
		HoursAlreadyUsed: float64(body.HoursAlreadyUsed),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, planRouteResponse{
		Trip:         res.Trip,
		RouteSummary: res.Summary,
		Route:        res.Route,
	})
}
