// Package domain contains the core data types for the trip planner.
// It performs no I/O and is imported by every other internal package
// (repo, service, handler, routing).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a Trip.
type TripStatus string

const (
	StatusPlanned    TripStatus = "PLANNED"
	StatusInProgress TripStatus = "IN_PROGRESS"
	StatusCompleted  TripStatus = "COMPLETED"
	StatusCancelled  TripStatus = "CANCELLED"
)

// Valid reports whether s is one of the four known statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s TripStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether a trip in status s may move to next.
// Trips only move forward (PLANNED -> IN_PROGRESS -> COMPLETED) or to
// CANCELLED, and never leave a terminal status.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return next.rank() > s.rank()
}

func (s TripStatus) rank() int {
	switch s {
	case StatusPlanned:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

// Trip is a single logged truck trip.
// Locations are free text as supplied by the caller; DistanceKM and
// DurationHours are filled from the routing service when the trip is planned.
type Trip struct {
	ID               uuid.UUID  `json:"id"`
	CurrentLocation  string     `json:"current_location"`
	PickupLocation   string     `json:"pickup_location"`
	DropoffLocation  string     `json:"dropoff_location"`
	CurrentCycleUsed float64    `json:"current_cycle_used"`
	HoursAlreadyUsed float64    `json:"hours_already_used"`
	DistanceKM       float64    `json:"distance_km"`
	DurationHours    float64    `json:"duration_hours"`
	Status           TripStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TripPatch carries a partial update. Nil fields are left unchanged.
type TripPatch struct {
	CurrentLocation  *string
	PickupLocation   *string
	DropoffLocation  *string
	CurrentCycleUsed *float64
	HoursAlreadyUsed *float64
	DistanceKM       *float64
	DurationHours    *float64
	Status           *TripStatus
}

// Apply returns a copy of t with every non-nil field of p written over it.
func (p TripPatch) Apply(t Trip) Trip {
	if p.CurrentLocation != nil {
		t.CurrentLocation = *p.CurrentLocation
	}
	if p.PickupLocation != nil {
		t.PickupLocation = *p.PickupLocation
	}
	if p.DropoffLocation != nil {
		t.DropoffLocation = *p.DropoffLocation
	}
	if p.CurrentCycleUsed != nil {
		t.CurrentCycleUsed = *p.CurrentCycleUsed
	}
	if p.HoursAlreadyUsed != nil {
		t.HoursAlreadyUsed = *p.HoursAlreadyUsed
	}
	if p.DistanceKM != nil {
		t.DistanceKM = *p.DistanceKM
	}
	if p.DurationHours != nil {
		t.DurationHours = *p.DurationHours
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// Summary is the aggregate view over every stored trip.
// Sums over zero trips are 0, never null.
type Summary struct {
	TotalTrips     int64   `json:"total_trips"`
	TotalDistance  float64 `json:"total_distance"`
	TotalDuration  float64 `json:"total_duration"`
	CompletedTrips int64   `json:"completed_trips"`
}
