package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestTripStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to domain.TripStatus
		want     bool
	}{
		{domain.StatusPlanned, domain.StatusInProgress, true},
		{domain.StatusPlanned, domain.StatusCompleted, true},
		{domain.StatusPlanned, domain.StatusCancelled, true},
		{domain.StatusInProgress, domain.StatusCompleted, true},
		{domain.StatusInProgress, domain.StatusCancelled, true},
		{domain.StatusInProgress, domain.StatusPlanned, false},
		{domain.StatusInProgress, domain.StatusInProgress, false},
		{domain.StatusPlanned, domain.StatusPlanned, false},
		{domain.StatusCompleted, domain.StatusCancelled, false},
		{domain.StatusCompleted, domain.StatusInProgress, false},
		{domain.StatusCancelled, domain.StatusInProgress, false},
		{domain.StatusCancelled, domain.StatusCancelled, false},
		{domain.StatusPlanned, domain.TripStatus("PAUSED"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTripPatch_Apply(t *testing.T) {
	trip := domain.Trip{
		CurrentLocation: "40.7,-74.0",
		PickupLocation:  "39.9,-75.1",
		DropoffLocation: "38.9,-77.0",
		DistanceKM:      10,
	}
	pickup := "41.8,-87.6"
	hours := 3.5

	got := domain.TripPatch{PickupLocation: &pickup, HoursAlreadyUsed: &hours}.Apply(trip)

	assert.Equal(t, "40.7,-74.0", got.CurrentLocation)
	assert.Equal(t, "41.8,-87.6", got.PickupLocation)
	assert.Equal(t, 3.5, got.HoursAlreadyUsed)
	assert.Equal(t, 10.0, got.DistanceKM)
}

func TestEventForStatus(t *testing.T) {
	assert.Equal(t, domain.EventTripStarted, domain.EventForStatus(domain.StatusInProgress))
	assert.Equal(t, domain.EventTripCompleted, domain.EventForStatus(domain.StatusCompleted))
	assert.Equal(t, domain.EventTripCancelled, domain.EventForStatus(domain.StatusCancelled))
	assert.Equal(t, domain.EventTripUpdated, domain.EventForStatus(domain.StatusPlanned))
}

func TestNewPaginationParams(t *testing.T) {
	ptr := func(v int) *int { return &v }

	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, domain.NewPaginationParams(ptr(3), ptr(500)))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(ptr(0), ptr(-1)))
	assert.Equal(t, 40, domain.NewPaginationParams(ptr(3), nil).Offset())
}

func TestNewPaginationParams_HugePageIsCapped(t *testing.T) {
	huge := math.MaxInt
	p := domain.NewPaginationParams(&huge, &huge)

	assert.Equal(t, 1<<20, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Positive(t, p.Offset())
}
