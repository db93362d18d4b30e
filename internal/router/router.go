package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"issuetracker/internal/config"
	"issuetracker/internal/handlers"
	"issuetracker/internal/middleware"
	"issuetracker/internal/repository"
	"issuetracker/internal/service"
)

func New(log zerolog.Logger, store repository.IssueStore, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Origin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	// Health
	r.Get("/healthz", handlers.Health(cfg.StoreDriver))

	// Service + handlers
	svc := service.NewIssueService(store, log, cfg.StoreTimeout)
	ih := handlers.NewIssueHTTP(svc, log)

	r.Route("/api/issues/{project}", func(r chi.Router) {
		r.Get("/", ih.List())
		r.Post("/", ih.Create())
		r.Put("/", ih.Update())
		r.Delete("/", ih.Delete())
	})

	return r
}
