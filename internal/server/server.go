// Package server exposes a Monitor over HTTP: JSON endpoints for the
// snapshot, system information and windowed history, a Prometheus endpoint
// and a health check.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/monitor"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Source is the measurement state served over HTTP. *monitor.Monitor
// satisfies it.
type Source interface {
	Stats(ctx context.Context) (monitor.Snapshot, error)
	Info() monitor.SystemInfo
	Window(lookback, points int) ([]monitor.Snapshot, error)
	Len() int
	Poisoned() bool
}

var _ Source = (*monitor.Monitor)(nil)

// Server is the HTTP front end of a Source.
type Server struct {
	addr     string
	source   Source
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	lookback int
	points   int

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// WithWindowDefaults sets the lookback and points used by /api/window when
// the query omits them.
func WithWindowDefaults(lookback, points int) Option {
	return func(s *Server) {
		s.lookback = lookback
		s.points = points
	}
}

// New creates a server for source listening on addr.
func New(addr string, source Source, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		source:   source,
		metrics:  NewMetrics(),
		logger:   logging.NewNopLogger(),
		security: DefaultSecurityConfig(),
		lookback: 60,
		points:   60,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          log.New(errorLogWriter{s.log()}, "", 0),
	}
	return s
}

// errorLogWriter routes net/http's internal error log through the server
// logger.
type errorLogWriter struct{ logger logging.Logger }

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.logger.Printf("%s", strings.TrimSpace(string(p)))
	return len(p), nil
}

// Handler returns the routed handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, s.metricsMiddleware(SecurityMiddleware(s.security, h)))
	}
	route("/api/stats", s.handleStats)
	route("/api/sysinfo", s.handleSysInfo)
	route("/api/window", s.handleWindow)
	route("/healthz", s.handleHealth)
	route("/metrics", s.handleMetrics)
	return mux
}

// Observe publishes a sampled snapshot through the Prometheus gauges. It is
// registered as a Sampler observer in serve mode.
func (s *Server) Observe(snap monitor.Snapshot) {
	s.metrics.ObserveSnapshot(snap)
	s.metrics.SetHistoryLength(s.source.Len())
}

// Start serves until ctx is done, then shuts down gracefully. It returns nil
// after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("http server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.logger.Info("http server stopped")
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active requests, counts and latency, and turns a
// handler panic into a 500 response.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				s.log().Error("handler panicked", fmt.Errorf("%v", p), logging.String("path", r.URL.Path))
				rec.status = http.StatusInternalServerError
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			s.metrics.DecrementActiveRequests()
			s.metrics.ObserveRequest(r.URL.Path, rec.status, time.Since(start))
		}()
		next(rec, r)
	}
}

func (s *Server) log() logging.Logger {
	if s.logger == nil {
		return logging.NewNopLogger()
	}
	return s.logger
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	snap, err := s.source.Stats(r.Context())
	if err != nil {
		s.writeSourceError(w, err)
		return
	}
	s.Observe(snap)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSysInfo(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.source.Info())
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	q := r.URL.Query()
	lookback, err := positiveParam(q.Get("lookback"), s.lookback)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lookback: "+err.Error())
		return
	}
	points, err := positiveParam(q.Get("points"), s.points)
	if err != nil {
		writeError(w, http.StatusBadRequest, "points: "+err.Error())
		return
	}
	snaps, err := s.source.Window(lookback, points)
	if err != nil {
		s.writeSourceError(w, err)
		return
	}
	if snaps == nil {
		snaps = []monitor.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	if s.source.Poisoned() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "poisoned"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "samples": s.source.Len()})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	s.log().Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func (s *Server) writeSourceError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrStatePoisoned) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.log().Error("request failed", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func positiveParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
