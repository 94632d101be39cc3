package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sitewright/sitewright/internal/compose"
	"github.com/sitewright/sitewright/internal/db"
	"github.com/sitewright/sitewright/internal/generate"
	"github.com/sitewright/sitewright/internal/preview"
	"github.com/sitewright/sitewright/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the sitewright HTTP server: project CRUD, generation, and
// live previews.
type Server struct {
	cfg        Config
	db         *db.DB
	store      *store.Store
	generator  *generate.Service
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies. The generator may be nil
// when no LLM provider is configured; the generation routes are then not
// mounted and existing projects remain browsable.
func New(cfg Config, database *db.DB, st *store.Store, generator *generate.Service) *Server {
	s := &Server{
		cfg:       cfg,
		db:        database,
		store:     st,
		generator: generator,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	store.RegisterRoutes(r, s.store)
	preview.RegisterRoutes(r, s.store, compose.New())
	if s.generator != nil {
		generate.RegisterRoutes(r, s.generator)
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Store returns the project store.
func (s *Server) Store() *store.Store { return s.store }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0, // WebSocket previews hold connections open
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sitewright server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
