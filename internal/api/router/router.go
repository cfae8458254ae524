package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pratik-mahalle/cloudcost/internal/api/docs"
	"github.com/pratik-mahalle/cloudcost/internal/api/handlers"
	"github.com/pratik-mahalle/cloudcost/internal/api/middleware"
	"github.com/pratik-mahalle/cloudcost/internal/auth"
	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Account        *handlers.AccountHandler
	Cost           *handlers.CostHandler
	Recommendation *handlers.RecommendationHandler
	Deletion       *handlers.DeletionHandler
	Budget         *handlers.BudgetHandler
	Export         *handlers.ExportHandler
}

// New builds the HTTP router
func New(cfg *config.Config, log *logger.Logger, tokens *auth.TokenManager, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.NotFound("Route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.MethodNotAllowed())
	})

	// Operational endpoints
	r.Get("/health", h.Health.Health)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window, middleware.MsgTooManyRequests))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.RateLimit.AuthRequests, cfg.RateLimit.Window, middleware.MsgTooManyLogins))
				r.Post("/register", h.Auth.Register)
				r.Post("/login", h.Auth.Login)
			})
			r.Post("/refresh", h.Auth.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(tokens))
				r.Get("/me", h.Auth.Me)
				r.Post("/logout", h.Auth.Logout)
			})
		})

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Route("/cloud-accounts", func(r chi.Router) {
				r.Get("/", h.Account.List)
				r.Post("/", h.Account.Create)
				r.Delete("/{id}", h.Account.Delete)
				r.Post("/{id}/sync", h.Account.Sync)
			})

			r.Route("/costs", func(r chi.Router) {
				r.Get("/summary", h.Cost.Summary)
				r.Get("/trends", h.Cost.Trends)
				r.Get("/breakdown", h.Cost.Breakdown)
				r.Get("/providers", h.Cost.Providers)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", h.Recommendation.List)
				r.Post("/generate", h.Recommendation.Generate)
				r.Get("/savings", h.Recommendation.Savings)
				r.Post("/{id}/implement", h.Recommendation.Implement)
				r.Post("/{id}/dismiss", h.Recommendation.Dismiss)
			})

			r.Route("/deletions", func(r chi.Router) {
				r.Get("/", h.Deletion.List)
				r.Post("/", h.Deletion.Record)
				r.Get("/analytics", h.Deletion.Analytics)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", h.Budget.List)
				r.Post("/", h.Budget.Create)
				r.Put("/{id}", h.Budget.Update)
				r.Delete("/{id}", h.Budget.Delete)
			})

			r.Route("/export", func(r chi.Router) {
				r.Get("/costs", h.Export.Costs)
				r.Get("/recommendations", h.Export.Recommendations)
				r.Get("/deletions", h.Export.Deletions)
			})
		})
	})

	return r
}
