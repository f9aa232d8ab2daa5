package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/voyagen/dramarail/internal/fetcher"
	"github.com/voyagen/dramarail/internal/service"
	"github.com/voyagen/dramarail/internal/store"
)

// Purger drops cached rails. Implemented by the Redis rail cache.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// Options carries the optional collaborators. Nil fields disable their routes.
type Options struct {
	FetchLog store.FetchLog
	Purger   Purger
}

// Server holds dependencies for the HTTP API.
type Server struct {
	feed     fetcher.Lister
	home     service.HomeOptions
	fetchLog store.FetchLog // nil when DATABASE_URL is not set
	purger   Purger         // nil when REDIS_URL is not set
	log      *zap.Logger
	router   chi.Router
}

// New creates a Server and registers routes.
func New(feed fetcher.Lister, home service.HomeOptions, log *zap.Logger, opts Options) *Server {
	srv := &Server{
		feed:     feed,
		home:     home,
		fetchLog: opts.FetchLog,
		purger:   opts.Purger,
		log:      log,
		router:   chi.NewRouter(),
	}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withLogging(s.log))
	r.Use(middleware.Recoverer)
	r.Use(withCORS)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/health", s.handleHealth)

	r.Get("/api/home", s.handleHome)
	r.Get("/api/rails/{rail}", s.handleRail)
	r.Post("/api/rails/purge", s.handlePurge)

	r.Get("/api/fetches", s.handleListFetches)

	r.Get("/watch-link/{bookID}", s.handleWatchLink)

	r.Get("/api/docs", handleSwaggerUI)
	r.Get("/api/docs/openapi.yaml", handleOpenAPISpec)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on addr.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown", zap.Error(err))
		}
	}()

	s.log.Info("listening", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}
