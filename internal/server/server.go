// Package server exposes the solve pipeline over HTTP.
//
// The API is a single solve endpoint plus liveness and Prometheus
// metrics:
//
//	POST /api/solve   decomposition text in, answer JSON out
//	GET  /healthz     liveness probe
//	GET  /metrics     Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lennartvogt/treedom/pkg/buildinfo"
	apperrors "github.com/lennartvogt/treedom/pkg/errors"
	"github.com/lennartvogt/treedom/pkg/pipeline"
)

const (
	// maxBodyBytes bounds the accepted decomposition text.
	maxBodyBytes = 32 << 20

	// shutdownTimeout is how long outstanding requests get to finish.
	shutdownTimeout = 5 * time.Second
)

// Server handles solve requests through a pipeline runner.
type Server struct {
	// Runner executes the solves. Shared across requests; the pipeline
	// is safe for concurrent use.
	Runner *pipeline.Runner

	// Logger receives request and error logs.
	Logger *log.Logger

	// MaxWidth is passed to every solve. Zero applies the pipeline
	// default, negative disables the guard.
	MaxWidth int
}

// New creates a server. A nil runner gets a cacheless default, a nil
// logger the standard one.
func New(runner *pipeline.Runner, logger *log.Logger, maxWidth int) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{Runner: runner, Logger: logger, MaxWidth: maxWidth}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Post("/api/solve", s.handleSolve)
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully. Outstanding requests get shutdownTimeout to
// complete before the listener is closed hard.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()
	s.Logger.Info("server listening", "addr", addr)

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.Logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

type solveResponse struct {
	RunID      string `json:"run_id"`
	Answer     int    `json:"answer"`
	Feasible   bool   `json:"feasible"`
	Bags       int    `json:"bags"`
	Width      int    `json:"width"`
	DurationMS int64  `json:"duration_ms"`
	Cached     bool   `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "request body unreadable")
		return
	}

	start := time.Now()
	result, err := s.Runner.Execute(r.Context(), src, pipeline.Options{MaxWidth: s.MaxWidth})
	if err != nil {
		s.writeExecuteError(w, err)
		return
	}

	s.Logger.Info("solve finished",
		"run_id", result.RunID,
		"answer", result.Answer,
		"bags", result.Bags,
		"cached", result.CacheInfo.AnswerHit)

	writeJSON(w, http.StatusOK, solveResponse{
		RunID:      result.RunID,
		Answer:     result.Answer,
		Feasible:   result.Feasible,
		Bags:       result.Bags,
		Width:      result.Width,
		DurationMS: time.Since(start).Milliseconds(),
		Cached:     result.CacheInfo.AnswerHit,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) writeExecuteError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing useful to write.
		return
	}

	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := statusFromCode(code)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("solve failed", "err", err)
	}
	s.writeError(w, status, code, apperrors.UserMessage(err))
}

func (s *Server) writeError(w http.ResponseWriter, status int, code apperrors.Code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: string(code)})
}

func statusFromCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidTree, apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeWidthLimit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", time.Since(start))
	})
}

// statusWriter records the response code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
