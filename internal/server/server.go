// Package server exposes the scoring engine and the assessment store over
// HTTP for the listing side panel.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/property-checklist/internal/config"
	"github.com/sells-group/property-checklist/internal/scorer"
	"github.com/sells-group/property-checklist/internal/store"
)

const (
	requestTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
	maxListLimit   = 500
)

// Server serves the checklist API.
type Server struct {
	cfg     config.ServerConfig
	engine  *scorer.Engine
	store   store.Store
	metrics *Metrics
	now     func() time.Time
}

// New creates a Server. st may be nil, in which case saving and history
// endpoints answer 503.
func New(cfg config.ServerConfig, engine *scorer.Engine, st store.Store) *Server {
	return &Server{
		cfg:     cfg,
		engine:  engine,
		store:   st,
		metrics: NewMetrics(),
		now:     time.Now,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if s.cfg.RateLimitRPS > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RateLimitRPS), s.cfg.RateLimitBurst)))
		}
		r.Use(chimw.Timeout(requestTimeout))

		r.Post("/assessments", s.createAssessment)
		r.Get("/assessments", s.listAssessments)
		r.Get("/assessments/{id}", s.getAssessment)
		r.Post("/scores", s.score)
		r.Post("/insight", s.insight)
	})
	return r
}

// ListenAndServe serves on cfg.Port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server: shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("server: listening", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
