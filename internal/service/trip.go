// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate the
// repo, the routing client, the summary cache and the event publisher.
// No SQL or HTTP lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/observability"
	"github.com/pkordes/trip-planner/internal/repo"
)

// RouteFinder looks up a driving route through an ordered list of points and
// returns the routing service's response body untouched.
type RouteFinder interface {
	Directions(ctx context.Context, coords []domain.Coordinates) (map[string]any, error)
}

// EventPublisher announces committed trip changes.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.TripEvent) error
}

// SummaryCache holds the last computed aggregate.
type SummaryCache interface {
	Get(ctx context.Context) (domain.Summary, bool, error)
	Set(ctx context.Context, s domain.Summary) error
	Invalidate(ctx context.Context) error
}

// PlanRouteInput is the caller's request to plan a trip.
// Locations are "lat,lon" or "lon,lat" strings.
type PlanRouteInput struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	HoursAlreadyUsed float64
}

// PlanRouteResult is everything plan_route returns: the stored trip, the
// route summary, and the raw routing payload.
type PlanRouteResult struct {
	Trip    domain.Trip
	Summary domain.RouteSummary
	Route   map[string]any
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	routes RouteFinder
	events EventPublisher
	cache  SummaryCache
	log    *slog.Logger
}

// NewTripService constructs a TripService. events and cache may be nil, in
// which case events are dropped and every summary is read from the repo.
func NewTripService(r repo.TripRepo, routes RouteFinder, events EventPublisher, cache SummaryCache, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{repo: r, routes: routes, events: events, cache: cache, log: log}
}

// PlanRoute parses the three locations, asks the routing service for a
// route through them, stores a PLANNED trip with the resulting distance and
// duration, and classifies the driver's cycle usage.
//
// Nothing is stored unless the routing lookup succeeds.
// Returns domain.ErrValidation for missing or malformed input and a
// *domain.ExternalServiceError when the routing response is unusable.
func (s *TripService) PlanRoute(ctx context.Context, in PlanRouteInput) (PlanRouteResult, error) {
	locations := []string{in.CurrentLocation, in.PickupLocation, in.DropoffLocation}
	for _, loc := range locations {
		if strings.TrimSpace(loc) == "" {
			return PlanRouteResult{}, fmt.Errorf("%w: all locations (current, pickup, and dropoff) are required", domain.ErrValidation)
		}
	}
	if err := validateHours(in.CurrentCycleUsed, in.HoursAlreadyUsed); err != nil {
		return PlanRouteResult{}, err
	}

	coords := make([]domain.Coordinates, 0, len(locations))
	for _, loc := range locations {
		c, err := domain.ParseCoordinates(loc)
		if err != nil {
			return PlanRouteResult{}, fmt.Errorf("%w: invalid coordinate format for %q: expected \"lat,lon\" or \"lon,lat\"", domain.ErrValidation, loc)
		}
		coords = append(coords, c)
	}

	route, err := s.routes.Directions(ctx, coords)
	if err != nil {
		return PlanRouteResult{}, fmt.Errorf("service.TripService.PlanRoute: %w", err)
	}

	metrics, err := domain.ExtractRouteMetrics(route)
	if err != nil {
		return PlanRouteResult{}, fmt.Errorf("service.TripService.PlanRoute: %w", err)
	}

	distanceKM := domain.MetersToKM(metrics.DistanceMeters)
	durationHours := domain.SecondsToHours(metrics.DurationSeconds)
	if distanceKM < 0 || durationHours < 0 {
		return PlanRouteResult{}, fmt.Errorf("service.TripService.PlanRoute: %w", &domain.ExternalServiceError{
			Message: "routing API returned a negative distance or duration",
			Payload: route,
		})
	}

	trip, err := s.repo.Create(ctx, domain.Trip{
		CurrentLocation:  in.CurrentLocation,
		PickupLocation:   in.PickupLocation,
		DropoffLocation:  in.DropoffLocation,
		CurrentCycleUsed: in.CurrentCycleUsed,
		HoursAlreadyUsed: in.HoursAlreadyUsed,
		DistanceKM:       distanceKM,
		DurationHours:    durationHours,
		Status:           domain.StatusPlanned,
	})
	if err != nil {
		return PlanRouteResult{}, fmt.Errorf("service.TripService.PlanRoute: %w", err)
	}

	cycle := domain.EvaluatePlannedCycle(in.HoursAlreadyUsed, durationHours, in.CurrentCycleUsed)
	observability.TripsPlannedTotal.WithLabelValues(string(cycle)).Inc()
	s.afterWrite(ctx, domain.EventTripPlanned, trip)

	return PlanRouteResult{
		Trip: trip,
		Summary: domain.RouteSummary{
			DistanceKM:     distanceKM,
			DurationHours:  durationHours,
			CycleStatus:    cycle,
			HoursAfterTrip: in.HoursAlreadyUsed + durationHours,
		},
		Route: route,
	}, nil
}

// Create validates and persists a trip without consulting the routing
// service. The status is always PLANNED.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Status = domain.StatusPlanned
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.afterWrite(ctx, domain.EventTripCreated, created)
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of trips, newest first, and the total count.
// The slice is never nil.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update applies patch to the stored trip. A status change must be an
// allowed transition (domain.ErrConflict otherwise).
func (s *TripService) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	next := patch.Apply(current)
	if err := validateTrip(next); err != nil {
		return domain.Trip{}, err
	}
	if next.Status != current.Status && !current.Status.CanTransitionTo(next.Status) {
		return domain.Trip{}, fmt.Errorf("%w: cannot move trip from %s to %s", domain.ErrConflict, current.Status, next.Status)
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	event := domain.EventTripUpdated
	if updated.Status != current.Status {
		event = domain.EventForStatus(updated.Status)
		observability.TripTransitionsTotal.WithLabelValues(string(updated.Status)).Inc()
	}
	s.afterWrite(ctx, event, updated)
	return updated, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.afterWrite(ctx, domain.EventTripDeleted, domain.Trip{ID: id})
	return nil
}

// Start moves a trip to IN_PROGRESS.
func (s *TripService) Start(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.transition(ctx, id, domain.StatusInProgress)
}

// Complete moves a trip to COMPLETED.
func (s *TripService) Complete(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.transition(ctx, id, domain.StatusCompleted)
}

// Cancel moves a trip to CANCELLED.
func (s *TripService) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

// transition reads the trip, checks the move is allowed, and writes the new
// status only if the row is still in the status that was read. Losing a race
// to another transition yields domain.ErrConflict; losing it to a delete
// yields domain.ErrNotFound.
func (s *TripService) transition(ctx context.Context, id uuid.UUID, to domain.TripStatus) (domain.Trip, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.transition: %w", err)
	}
	if !current.Status.CanTransitionTo(to) {
		return domain.Trip{}, fmt.Errorf("%w: cannot move trip from %s to %s", domain.ErrConflict, current.Status, to)
	}

	updated, err := s.repo.SetStatus(ctx, id, current.Status, to)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("service.TripService.transition: %w", err)
		}
		// The guarded update matched nothing: the trip was either deleted or
		// moved by someone else since the read.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.transition: %w", err)
		}
		return domain.Trip{}, fmt.Errorf("%w: trip status changed concurrently", domain.ErrConflict)
	}

	observability.TripTransitionsTotal.WithLabelValues(string(to)).Inc()
	s.afterWrite(ctx, domain.EventForStatus(to), updated)
	return updated, nil
}

// Summary returns the aggregate over all trips, from cache when possible.
// Cache failures are logged and fall through to the repo.
func (s *TripService) Summary(ctx context.Context) (domain.Summary, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "summary cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	summary, err := s.repo.Aggregate(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.TripService.Summary: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.log.WarnContext(ctx, "summary cache write failed", "error", err)
		}
	}
	return summary, nil
}

// ELDStatus reports the hours left in the driver's cycle after the trip.
func (s *TripService) ELDStatus(ctx context.Context, id uuid.UUID) (domain.ELDStatus, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ELDStatus{}, fmt.Errorf("service.TripService.ELDStatus: %w", err)
	}

	status, remaining := domain.EvaluateRemainingCycle(trip.HoursAlreadyUsed, trip.DurationHours, trip.CurrentCycleUsed)
	return domain.ELDStatus{
		TripID:         trip.ID.String(),
		CycleStatus:    status,
		RemainingHours: remaining,
	}, nil
}

// afterWrite runs the side effects of a committed write. Failures are logged
// and never fail the request.
func (s *TripService) afterWrite(ctx context.Context, typ domain.TripEventType, trip domain.Trip) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.WarnContext(ctx, "summary cache invalidate failed", "trip_id", trip.ID, "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, domain.NewTripEvent(typ, trip)); err != nil {
			s.log.WarnContext(ctx, "trip event publish failed", "trip_id", trip.ID, "event", typ, "error", err)
		}
	}
}

// validateTrip enforces the rules shared by Create and Update:
//   - all three locations are non-empty (whitespace-only is empty)
//   - hour and distance fields are finite and non-negative
//   - status is one of the known values
func validateTrip(t domain.Trip) error {
	if strings.TrimSpace(t.CurrentLocation) == "" {
		return fmt.Errorf("%w: current_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(t.PickupLocation) == "" {
		return fmt.Errorf("%w: pickup_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(t.DropoffLocation) == "" {
		return fmt.Errorf("%w: dropoff_location is required", domain.ErrValidation)
	}
	if err := validateHours(t.CurrentCycleUsed, t.HoursAlreadyUsed); err != nil {
		return err
	}
	if err := nonNegative("distance_km", t.DistanceKM); err != nil {
		return err
	}
	if err := nonNegative("duration_hours", t.DurationHours); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, t.Status)
	}
	return nil
}

func validateHours(currentCycleUsed, hoursAlreadyUsed float64) error {
	if err := nonNegative("current_cycle_used", currentCycleUsed); err != nil {
		return err
	}
	return nonNegative("hours_already_used", hoursAlreadyUsed)
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, field)
	}
	return nil
}
