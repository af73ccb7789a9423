package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/api/ws"
	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/config"
	"github.com/gosuda/teamboard/internal/server/middleware"
	"github.com/gosuda/teamboard/internal/service"
	redisstore "github.com/gosuda/teamboard/internal/store/redis"
)

const apiVersion = "1.0.0"

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	svc        *service.Service
	auth       *auth.Service
	wsHub      *ws.Hub // nil when Redis is not configured
	cfg        *config.Config
}

// New creates a Server with all routes wired. pubsub may be nil, in which case
// the /ws routes are not mounted. ctx bounds the rate limiter sweepers.
func New(ctx context.Context, cfg *config.Config, svc *service.Service, authSvc *auth.Service, pubsub *redisstore.PubSub) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger())
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router: router,
		svc:    svc,
		auth:   authSvc,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1. Role gating only narrows what a viewer
	// may change; the role itself is self-declared at session start.
	router.Route("/api/v1", func(r chi.Router) {
		// Unauthenticated session routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
			registerAuthRoutes(humachi.New(r, apiConfig("Teamboard Auth API", false)), authSvc)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RequireTenant())
			r.Use(middleware.RateLimit(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

			r.Group(func(r chi.Router) {
				registerAPIRoutes(humachi.New(r, apiConfig("Teamboard API", true)), svc)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager())
				registerManagerRoutes(humachi.New(r, apiConfig("Teamboard Manager API", false)), svc)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				registerAdminRoutes(humachi.New(r, apiConfig("Teamboard Admin API", false)), svc)
			})
		})
	})

	if pubsub != nil {
		s.wsHub = ws.NewHub(pubsub)
		router.Route("/ws", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RequireTenant())
			registerWSRoutes(r, s.wsHub)
		})
		log.Info().Msg("board event streaming enabled")
	}

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// apiConfig builds a huma config served under /api/v1. Only one API per
// router publishes the OpenAPI document and docs page.
func apiConfig(title string, docs bool) huma.Config {
	c := huma.DefaultConfig(title, apiVersion)
	c.Servers = []*huma.Server{
		{URL: "/api/v1"},
	}
	if !docs {
		c.OpenAPIPath = ""
		c.DocsPath = ""
		c.SchemasPath = ""
	}
	return c
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
