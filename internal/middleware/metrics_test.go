package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/observability"
)

// TestMetrics_countsByRoutePattern verifies that two requests for different
// trip IDs land on the same route label.
func TestMetrics_countsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics())
	r.Get("/trips/{id}/eld_status", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := observability.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/trips/{id}/eld_status", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/trips/"+id+"/eld_status", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
