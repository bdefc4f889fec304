package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes. The health checker is optional;
// when nil only the bare liveness endpoint is registered.
func SetupRoutes(h *Handlers, hc *HealthChecker) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health probes (no body required)
	r.Get("/health_check", h.HandleHealthCheck)
	if hc != nil {
		r.Get("/health/ready", hc.HandleReadiness)
	}

	// Subscription lifecycle
	r.Post("/subscriptions", h.HandleCreateSubscription)
	r.Get("/subscriptions/confirm", h.HandleConfirmSubscription)

	// Newsletter delivery
	r.Post("/newsletters", h.HandlePublishNewsletter)
	r.Post("/newsletters/feed", h.HandlePublishFromFeed)

	return r
}
