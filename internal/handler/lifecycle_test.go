package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestTransitions_200(t *testing.T) {
	tests := []struct {
		action  string
		want    domain.TripStatus
		message string
	}{
		{"start", domain.StatusInProgress, "Trip started"},
		{"complete", domain.StatusCompleted, "Trip completed"},
		{"cancel", domain.StatusCancelled, "Trip cancelled"},
	}
	for _, tc := range tests {
		t.Run(tc.action, func(t *testing.T) {
			fixture := tripFixture()
			move := func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
				assert.Equal(t, fixture.ID, id)
				fixture.Status = tc.want
				return fixture, nil
			}
			svc := &mockTripServicer{start: move, complete: move, cancel: move}

			rec := do(newHTTPHandler(svc), http.MethodPost, "/trips/"+fixture.ID.String()+"/"+tc.action, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp struct {
				Message string      `json:"message"`
				Trip    domain.Trip `json:"trip"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.message, resp.Message)
			assert.Equal(t, tc.want, resp.Trip.Status)
		})
	}
}

func TestStartTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		start: func(context.Context, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.transition: %w", domain.ErrNotFound)
		},
	}

	rec := do(newHTTPHandler(svc), http.MethodPost, "/trips/"+uuid.New().String()+"/start", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteTrip_409(t *testing.T) {
	svc := &mockTripServicer{
		complete: func(context.Context, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: cannot move trip from CANCELLED to COMPLETED", domain.ErrConflict)
		},
	}

	rec := do(newHTTPHandler(svc), http.MethodPost, "/trips/"+uuid.New().String()+"/complete", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetSummary_200_Empty(t *testing.T) {
	svc := &mockTripServicer{
		summary: func(context.Context) (domain.Summary, error) { return domain.Summary{}, nil },
	}

	rec := do(newHTTPHandler(svc), http.MethodGet, "/trips/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_trips":0,"total_distance":0,"total_duration":0,"completed_trips":0}`, rec.Body.String())
}

func TestGetELDStatus_200(t *testing.T) {
	id := uuid.New()
	svc := &mockTripServicer{
		eldStatus: func(_ context.Context, got uuid.UUID) (domain.ELDStatus, error) {
			assert.Equal(t, id, got)
			return domain.ELDStatus{TripID: id.String(), CycleStatus: domain.CycleOK, RemainingHours: 6.5}, nil
		},
	}

	rec := do(newHTTPHandler(svc), http.MethodGet, "/trips/"+id.String()+"/eld_status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"trip_id":"`+id.String()+`","cycle_status":"OK","remaining_hours":6.5}`, rec.Body.String())
}

func TestGetELDStatus_404(t *testing.T) {
	svc := &mockTripServicer{
		eldStatus: func(context.Context, uuid.UUID) (domain.ELDStatus, error) {
			return domain.ELDStatus{}, domain.ErrNotFound
		},
	}

	rec := do(newHTTPHandler(svc), http.MethodGet, "/trips/"+uuid.New().String()+"/eld_status", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
