// Package server exposes the note collections over a small REST surface,
// symmetric across categories:
//
//	GET    /api/{category}          list, newest first
//	POST   /api/{category}          insert (201) or upsert-by-id (200)
//	DELETE /api/{category}?id=<id>  delete by id
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/pxnote/pkg/adapters/docstore"
	"github.com/aretw0/pxnote/pkg/core"
	"github.com/aretw0/pxnote/pkg/notes"
)

// Server wires one remote repository per category behind a chi router.
type Server struct {
	logger  *slog.Logger
	manager *docstore.Manager
	repos   map[core.Category]*notes.Remote
	router  chi.Router
}

// New builds the server on top of an opened-on-demand document store.
func New(manager *docstore.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	repos := make(map[core.Category]*notes.Remote, len(core.Categories()))
	for _, category := range core.Categories() {
		repos[category] = notes.NewRemote(category, manager.Collection(category), logger)
	}

	s := &Server{
		logger:  logger,
		manager: manager,
		repos:   repos,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/{category}", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleUpsert)
		r.Delete("/", s.handleDelete)
	})

	return r
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs each request through slog, keeping the access log in
// the same stream and format as the rest of the service.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
