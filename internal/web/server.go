// Package web provides the HTTP surface for CSV import and export.
// It renders nothing itself: import responds with the JSON Import Report
// and export responds with downloadable file bytes, both consumed by the
// surrounding admin UI.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/csvadmin/csvadmin/internal/config"
	"github.com/csvadmin/csvadmin/internal/core"
)

// Lister reads the current entity collection for export.
type Lister interface {
	List(ctx context.Context, schema *core.Schema) ([]core.Entity, error)
}

// Server is the HTTP server for the import/export API.
type Server struct {
	cfg      *config.Config
	registry *core.Registry
	importer *core.Importer
	lister   Lister
	router   *chi.Mux
	server   *http.Server
}

// NewServer wires the API around an entity registry, an importer, and a
// read side for exports.
func NewServer(cfg *config.Config, registry *core.Registry, importer *core.Importer, lister Lister) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		importer: importer,
		lister:   lister,
		router:   chi.NewRouter(),
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
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/entities", s.handleListEntities)
		r.Get("/template/{entity}", s.handleDownloadTemplate)
		r.Get("/export/{entity}", s.handleExport)
		r.Post("/import/{entity}", s.handleImport)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
