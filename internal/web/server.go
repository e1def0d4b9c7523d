// Package web provides the HTTP server and handlers for the import API.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/GilTarablus/TidyImport/internal/config"
	"github.com/GilTarablus/TidyImport/internal/session"
	"github.com/GilTarablus/TidyImport/internal/web/middleware"
)

// Server is the HTTP server for the import service.
type Server struct {
	cfg    *config.Config
	store  *session.Store
	router *chi.Mux
	server *http.Server

	limiter       *rateLimiter
	uploadLimiter *rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, store *session.Store) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		s.limiter = newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.uploadLimiter = newRateLimiter(s.cfg.Rate.UploadLimit, time.Minute)
		s.router.Use(s.limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Upload gets its own, tighter limit on top of the global one.
		if s.uploadLimiter != nil {
			r.With(s.uploadLimiter.middleware).Post("/sessions", s.handleCreateSession)
		} else {
			r.Post("/sessions", s.handleCreateSession)
		}

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			// Pre-processing: mapping review and structural transforms.
			r.Put("/mapping", s.handleSetMapping)
			r.Post("/split-name", s.handleSplitName)
			r.Post("/consolidate-address", s.handleConsolidateAddress)

			// Cleaning run and the issue report over its output.
			r.Post("/process", s.handleProcess)
			r.Get("/issues", s.handleIssues)

			// Guided corrections.
			r.Post("/rows/remove", s.handleRemoveRows)
			r.Post("/rows/update", s.handleUpdateCell)
			r.Post("/fill", s.handleFillField)
			r.Post("/birthday-format", s.handleBirthdayFormat)

			r.Get("/export", s.handleExport)
		})
	})
}

// Start begins listening for HTTP requests and blocks until shutdown. The
// session store and the rate limiters get periodic cleanup tied to ctx.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	go s.runCleanup(ctx)

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// runCleanup evicts expired sessions and stale limiter windows until ctx
// is cancelled.
func (s *Server) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Import.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.store.Sweep(); evicted > 0 {
				slog.Info("evicted expired sessions", "count", evicted)
			}
			if s.limiter != nil {
				s.limiter.sweep()
			}
			if s.uploadLimiter != nil {
				s.uploadLimiter.sweep()
			}
		}
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// API only, nothing should load as a document
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
