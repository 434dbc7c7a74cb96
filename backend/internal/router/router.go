package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/hoots/backend/internal/setup"
	mw "github.com/itchan-dev/hoots/shared/middleware"
	"github.com/itchan-dev/hoots/shared/middleware/metrics"
)

// New creates and configures a new chi router with all the routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// JSON API only, no scripts/styles needed
	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, backendCSP))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/hoots", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.NeedAuth())
		if deps.RateLimiter != nil {
			r.Use(mw.RateLimit(deps.RateLimiter, mw.GetUserIDFromContext))
		}

		r.Post("/", h.CreateHoot)
		r.Get("/", h.ListHoots)

		r.Route("/{hootId}", func(r chi.Router) {
			r.Get("/", h.GetHoot)
			r.Put("/", h.UpdateHoot)
			r.Delete("/", h.DeleteHoot)

			r.Post("/comments", h.CreateComment)
			r.Put("/comments/{commentId}", h.UpdateComment)
			r.Delete("/comments/{commentId}", h.DeleteComment)
		})
	})

	return r
}
