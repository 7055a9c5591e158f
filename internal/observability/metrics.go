// Package observability holds the Prometheus collectors and the operation
// timing helper shared by the HTTP, routing and service layers.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trip_planner"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RoutingRequestsTotal counts outbound directions calls by outcome
	// ("ok", "error").
	RoutingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "routing_requests_total", Help: "Outbound routing API calls"},
		[]string{"outcome"},
	)
	RoutingRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "routing_request_duration_seconds",
		Help:      "Outbound routing API latency",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})

	// TripsPlannedTotal counts successfully planned trips by planned cycle status.
	TripsPlannedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "trips_planned_total", Help: "Trips planned, by cycle status"},
		[]string{"cycle_status"},
	)

	// TripTransitionsTotal counts status transitions by target status.
	TripTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "trip_transitions_total", Help: "Trip status transitions, by target status"},
		[]string{"status"},
	)
)
