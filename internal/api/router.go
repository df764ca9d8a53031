package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/CardioRisk/internal/assessment"
	"github.com/MikeSquared-Agency/CardioRisk/internal/config"
	"github.com/MikeSquared-Agency/CardioRisk/internal/hermes"
	"github.com/MikeSquared-Agency/CardioRisk/internal/store"
)

// NewRouter builds the public API. s and h may be nil when the audit log or
// event publishing are disabled.
func NewRouter(p *assessment.Pipeline, s store.Store, h hermes.Client, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.TrustClientID))

	assessments := NewAssessmentsHandler(p, s, h, logger)
	form := NewFormHandler()
	admin := NewAdminHandler(p, s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/form", form.Get)
		r.Get("/advice/{tier}", form.Advice)

		r.Post("/assessments", assessments.Create)
		r.Get("/assessments/{id}", assessments.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/assessments", assessments.List)
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
