package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripEventType names a trip lifecycle change.
type TripEventType string

const (
	EventTripPlanned   TripEventType = "trip.planned"
	EventTripCreated   TripEventType = "trip.created"
	EventTripUpdated   TripEventType = "trip.updated"
	EventTripStarted   TripEventType = "trip.started"
	EventTripCompleted TripEventType = "trip.completed"
	EventTripCancelled TripEventType = "trip.cancelled"
	EventTripDeleted   TripEventType = "trip.deleted"
)

// TripEvent is published after a trip write has been committed.
type TripEvent struct {
	Type          TripEventType `json:"type"`
	TripID        uuid.UUID     `json:"trip_id"`
	Status        TripStatus    `json:"status,omitempty"`
	DistanceKM    float64       `json:"distance_km"`
	DurationHours float64       `json:"duration_hours"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// NewTripEvent builds an event of type typ describing t.
func NewTripEvent(typ TripEventType, t Trip) TripEvent {
	return TripEvent{
		Type:          typ,
		TripID:        t.ID,
		Status:        t.Status,
		DistanceKM:    t.DistanceKM,
		DurationHours: t.DurationHours,
		OccurredAt:    time.Now().UTC(),
	}
}

// eventForStatus maps a target status to the event announcing it.
var eventForStatus = map[TripStatus]TripEventType{
	StatusInProgress: EventTripStarted,
	StatusCompleted:  EventTripCompleted,
	StatusCancelled:  EventTripCancelled,
}

// EventForStatus returns the lifecycle event for a transition into s.
// Statuses without a dedicated event map to EventTripUpdated.
func EventForStatus(s TripStatus) TripEventType {
	if e, ok := eventForStatus[s]; ok {
		return e
	}
	return EventTripUpdated
}
