package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/survey/api/internal/config"
)

func NewHandler(cfg config.Config, responseHandler *ResponseHandler, healthHandler *HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":  "endpoint not found",
			"path":   r.URL.Path,
			"method": r.Method,
		})
	})

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/responses", func(r chi.Router) {
			r.Post("/", responseHandler.Create)
			r.Get("/", responseHandler.ListAll)
			r.Get("/count", responseHandler.Count)
			r.Get("/recent", responseHandler.Recent)
			r.Get("/stats", responseHandler.Stats)
			r.Get("/check/{email}", responseHandler.CheckEmail)
			r.Get("/{email}", responseHandler.GetByEmail)
		})
	})

	return r
}
