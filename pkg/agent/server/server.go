// Package server exposes the agent over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/eventsync-labs/agent/pkg/agent"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP front end for the agent.
type Server struct {
	router *chi.Mux
	agent  *agent.Agent
	cfg    Config
}

// Config for the server.
type Config struct {
	CORSOrigins []string
	// RootRedirectURL is where GET / sends browsers; defaults to the
	// project page.
	RootRedirectURL string
}

const defaultRootRedirect = "https://github.com/eventsync-labs/agent"

// New creates a new HTTP server.
func New(ag *agent.Agent, cfg Config) *Server {
	if cfg.RootRedirectURL == "" {
		cfg.RootRedirectURL = defaultRootRedirect
	}

	s := &Server{
		router: chi.NewRouter(),
		agent:  ag,
		cfg:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.rootHandler)
	s.router.Get("/health", s.healthHandler)
	s.router.Post("/chat", s.chatHandler)
	s.router.Get("/conversations/{id}", s.getConversationHandler)
	s.router.Delete("/conversations/{id}", s.deleteConversationHandler)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}
