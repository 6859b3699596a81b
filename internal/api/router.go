package api

import (
	"net/http"
	"park-course-service/internal/api/handlers"
	"park-course-service/internal/platform/metrics"
	"park-course-service/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Dependencies of the HTTP API.
type RouterDeps struct {
	Session           *services.Session
	Statistics        *services.StatisticsService
	Metrics           *metrics.Collector
	Logger            *zap.Logger
	MaxMandatoryStops int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger, deps.Metrics))

	poiHandler := &handlers.PointOfInterestHandler{Provider: deps.Session.Provider(), Logger: logger}
	planHandler := &handlers.PlanHandler{
		Session:  deps.Session,
		Validate: handlers.NewValidator(),
		MaxStops: deps.MaxMandatoryStops,
		Logger:   logger,
	}
	statsHandler := &handlers.StatisticsHandler{
		Service: deps.Statistics,
		Session: deps.Session,
		Logger:  logger,
	}

	r.Get("/health", handlers.Health(logger))
	r.Get("/pois", poiHandler.List)
	r.Get("/pois/{id}", poiHandler.Get)

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", planHandler.Plan)
		r.Delete("/", planHandler.Clear)
		r.Get("/current", planHandler.Current)
		r.Post("/undo", planHandler.Undo)
		if deps.Statistics != nil {
			r.Post("/current/accept", statsHandler.Accept)
		}
	})

	if deps.Statistics != nil {
		r.Get("/statistics", statsHandler.Summary)
	}
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
