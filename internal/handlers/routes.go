package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the service router.
func (h *Handler) Routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/system/install", h.InstallDatabase)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ingest/games", h.IngestGames)
		r.Get("/stats/players/{playerID}", h.GetPlayerStats)
		r.Get("/stats/leaderboard", h.GetLeaderboard)
		r.Get("/milestones", h.GetMilestones)
		r.Post("/forecast", h.PostForecast)
	})

	return r
}
