// Package server exposes the lint engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/lukasmwerner/harper/internal/engine"
	"github.com/lukasmwerner/harper/pkg/core"
	"github.com/lukasmwerner/harper/pkg/dialect"
	"github.com/lukasmwerner/harper/pkg/harper"
	"github.com/lukasmwerner/harper/pkg/lint"
)

// Defaults for Config.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 1 << 20
)

// RunIDHeader carries the id of a lint run.
const RunIDHeader = "X-Run-ID"

// Linter is the part of the engine the server uses.
type Linter interface {
	LintText(ctx context.Context, text string) (engine.Result, error)
	Rules() []core.RuleInfo
	Dialect() dialect.Dialect
}

// Config holds configuration for the HTTP server.
type Config struct {
	Engine         Linter
	Addr           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// Server serves the lint API.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics
	router  chi.Router
}

// LintRequest is the body of POST /v1/lint.
type LintRequest struct {
	Text string `json:"text"`
	// Disabled drops lints from these rules from the response
	Disabled []string `json:"disabled,omitempty"`
}

// LintResponse is the body returned by POST /v1/lint.
type LintResponse struct {
	RunID   string      `json:"run_id"`
	Dialect string      `json:"dialect"`
	Tokens  int         `json:"tokens"`
	Lints   []lint.Lint `json:"lints"`
}

// VersionResponse is the body returned by GET /v1/version.
type VersionResponse struct {
	Version string `json:"version"`
	Go      string `json:"go"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New creates a server and its routes.
func New(cfg Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		s.observe,
		middleware.Recoverer,
		middleware.Timeout(s.cfg.RequestTimeout),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/lint", s.handleLint)
		r.Get("/rules", s.handleRules)
		r.Get("/version", s.handleVersion)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// observe records metrics and logs each request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	var req LintRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	runID := uuid.NewString()
	res, err := s.cfg.Engine.LintText(r.Context(), req.Text)
	if err != nil {
		s.logger.Warn("lint failed", "run_id", runID, "error", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	lints := make([]lint.Lint, 0, len(res.Lints))
	for _, l := range res.Lints {
		if slices.Contains(req.Disabled, l.Rule) {
			continue
		}
		lints = append(lints, l)
		s.metrics.lints.WithLabelValues(l.Rule).Inc()
	}
	s.metrics.lintRuns.Inc()
	s.logger.Debug("lint run", "run_id", runID, "tokens", res.Tokens, "lints", len(lints), "cached", res.Cached)

	w.Header().Set(RunIDHeader, runID)
	writeJSON(w, http.StatusOK, LintResponse{
		RunID:   runID,
		Dialect: s.cfg.Engine.Dialect().String(),
		Tokens:  res.Tokens,
		Lints:   lints,
	})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Engine.Rules())
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: harper.Version(), Go: runtime.Version()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// Serve listens on the configured address and blocks until ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting HTTP server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down HTTP server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
