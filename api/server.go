/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address from X-Forwarded-For
  3. Logger:     Structured request logging (zap)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/people/*         Roster management
  /api/schedule/*       Resolved days and month views
  /api/staffing/*       Staffing metrics and snapshots
  /api/config/*         Per-month staffing configuration
  /api/stats/*          Recorded daily figures
  /api/scenarios/*      Demo scenarios
  /metrics              Prometheus scrape endpoint
  /health               Liveness

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Request logger
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jbrannon972/MITAPP-sub000/metrics"
)

// DefaultAllowedOrigins is used when no origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string, logger *zap.Logger) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/people", func(r chi.Router) {
			r.Get("/", h.ListPeople)
			r.Post("/", h.SavePerson)
			r.Get("/{id}", h.GetPerson)
			r.Post("/{id}/end", h.EndPerson)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/month/{year}/{month}", h.GetMonth)
			r.Get("/{date}", h.GetDay)
			r.Put("/{date}", h.SaveDay)
		})

		r.Route("/staffing", func(r chi.Router) {
			r.Get("/snapshots", h.ListSnapshots)
			r.Get("/{date}", h.GetStaffing)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/{year}/{month}", h.GetConfig)
			r.Put("/{year}/{month}", h.SaveConfig)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/{date}", h.GetStats)
			r.Put("/{date}", h.SaveStats)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
