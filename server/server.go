// Package server exposes generation and resource enrichment over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/richinex/waypoint/generation"
	"github.com/richinex/waypoint/internal/logger"
	"github.com/richinex/waypoint/resources"
)

// Generator produces a roadmap result for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string) generation.Result
}

// Explainer writes a prose explanation of a topic.
type Explainer interface {
	Explain(ctx context.Context, topic string) resources.TopicContent
}

// Config holds listener settings.
type Config struct {
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Server routes HTTP requests to the application components.
type Server struct {
	cfg       Config
	generator Generator
	resources resources.Fetcher
	explainer Explainer
	logger    *zap.Logger
}

// New creates a server. The explainer may be nil, in which case
// /api/explain is not registered.
func New(cfg Config, gen Generator, res resources.Fetcher, exp Explainer, l *zap.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg:       cfg,
		generator: gen,
		resources: res,
		explainer: exp,
		logger:    logger.OrNop(l),
	}
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/resources", s.handleResources)
		if s.explainer != nil {
			r.Post("/explain", s.handleExplain)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.Int("port", s.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server shutdown completed")
	return nil
}
