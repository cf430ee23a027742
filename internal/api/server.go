// Package api provides the HTTP server and handlers for the profile service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/watpato/profile-server/internal/config"
	"github.com/watpato/profile-server/internal/ratelimit"
	"github.com/watpato/profile-server/internal/store"
	"github.com/watpato/profile-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     store.Store
	services  *Services
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		services:  services,
		validator: validation.New(),
		router:    chi.NewRouter(),
		limiter:   ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		logger:    logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Profile Service API", "1.0.0")
	humaConfig.DocsPath = "/api-docs"

	RegisterErrorHandler(cfg.App.Environment == "development")
	s.api = humachi.New(s.router, humaConfig)

	s.registerHealthRoutes()
	s.registerProfileRoutes()
	s.registerSocialRoutes()

	// Enveloped fallbacks so unknown routes never return bare text.
	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Resource not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", s.logger)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.rateLimitMiddleware)
}
