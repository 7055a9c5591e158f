// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, plan.go, lifecycle.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or the routing service.
type TripServicer interface {
	PlanRoute(ctx context.Context, in service.PlanRouteInput) (service.PlanRouteResult, error)
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Start(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Complete(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Summary(ctx context.Context) (domain.Summary, error)
	ELDStatus(ctx context.Context, id uuid.UUID) (domain.ELDStatus, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips TripServicer
	log   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Routes registers every endpoint on a fresh chi router. main.go mounts the
// result under its middleware stack; tests serve it directly.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Post("/plan_route", s.PlanRoute)
		r.Get("/summary", s.GetSummary)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.ReplaceTrip)
			r.Patch("/", s.PatchTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/start", s.StartTrip)
			r.Post("/complete", s.CompleteTrip)
			r.Post("/cancel", s.CancelTrip)
			r.Get("/eld_status", s.GetELDStatus)
		})
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
