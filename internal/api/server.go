// Package api exposes the HTTP interface for the wodbot service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wodbot/wodbot/internal/config"
	"github.com/wodbot/wodbot/internal/metrics"
	"github.com/wodbot/wodbot/internal/wod"
)

// handlerTimeout caps a single request, leaving headroom for the
// fetcher's worst case of every attempt timing out plus backoff.
const handlerTimeout = 90 * time.Second

// Runner executes one extraction attempt against a URL.
type Runner interface {
	Run(ctx context.Context, url string) (wod.Record, error)
}

// Server wires HTTP handlers to the extraction pipeline.
type Server struct {
	router chi.Router
	runner Runner
	cfg    config.Config
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(runner Runner, cfg config.Config, logger *zap.Logger) *Server {
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(handlerTimeout))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/wod", s.getWod)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getWod runs the pipeline against the configured page and returns the
// record. A fetch failure is the only hard error; it maps to 502 with
// the attempt count so operators can see how hard the fetcher tried.
func (s *Server) getWod(w http.ResponseWriter, r *http.Request) {
	record, err := s.runner.Run(r.Context(), s.cfg.Source.URL)
	if err != nil {
		var fetchErr *wod.FetchError
		if errors.As(err, &fetchErr) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":    "workout page could not be fetched",
				"attempts": fetchErr.Attempts,
			})
			return
		}
		s.logger.Error("pipeline failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
