// Package server exposes the chart exporter over HTTP.
//
// Besides POST /export it serves Kubernetes-style health probes and the
// Prometheus /metrics endpoint, and shuts down gracefully by failing
// readiness before draining connections.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cerrors "github.com/felixgeelhaar/boardchart/internal/errors"
	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/health"
	"github.com/felixgeelhaar/boardchart/internal/hierarchy"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/metrics"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Server provides the export endpoint plus health and metrics endpoints.
type Server struct {
	httpServer      *http.Server
	probeManager    *health.ProbeManager
	exporter        *export.Exporter
	metrics         *metrics.Metrics
	logger          *log.Logger
	inShutdown      atomic.Bool
	shutdownTimeout time.Duration
	maxBodyBytes    int64
}

// Config holds server configuration.
type Config struct {
	// Address is the listen address (e.g., ":8080", "0.0.0.0:8080")
	Address string

	// ShutdownTimeout is the maximum time to wait for connections to drain during shutdown.
	// Defaults to 30 seconds if not specified.
	ShutdownTimeout time.Duration

	// ReadTimeout defaults to 10 seconds.
	ReadTimeout time.Duration

	// WriteTimeout defaults to 30 seconds; large charts take a while to stream.
	WriteTimeout time.Duration

	// IdleTimeout defaults to 60 seconds.
	IdleTimeout time.Duration

	// MaxBodyBytes caps the task list upload. Defaults to 8 MiB.
	MaxBodyBytes int64
}

// Deps are the collaborators a server needs. Gatherer and Metrics may be nil,
// in which case /metrics is not registered.
type Deps struct {
	Probes   *health.ProbeManager
	Exporter *export.Exporter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// NewServer creates a new HTTP server.
func NewServer(deps Deps, cfg Config) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 8 << 20
	}
	if deps.Logger == nil {
		deps.Logger = log.DefaultLogger()
	}

	s := &Server{
		probeManager:    deps.Probes,
		exporter:        deps.Exporter,
		metrics:         deps.Metrics,
		logger:          deps.Logger,
		shutdownTimeout: cfg.ShutdownTimeout,
		maxBodyBytes:    cfg.MaxBodyBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/export", s.handleExport)

	mux.HandleFunc("/health/live", s.handleLiveness)
	mux.HandleFunc("/health/ready", s.handleReadiness)
	mux.HandleFunc("/health/startup", s.handleStartup)
	mux.HandleFunc("/healthz", s.handleReadiness)

	if deps.Gatherer != nil {
		mux.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the server's routes, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start marks the service initialized and blocks serving requests.
// Returns http.ErrServerClosed when the server is shut down gracefully.
func (s *Server) Start() error {
	s.probeManager.MarkInitialized()
	s.logger.Info("listening", "address", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown fails readiness, stops keep-alives and drains open connections
// for at most ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)
	s.probeManager.MarkShutdown()
	s.httpServer.SetKeepAlivesEnabled(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

// IsShuttingDown returns whether the server is shutting down.
func (s *Server) IsShuttingDown() bool {
	return s.inShutdown.Load()
}

// errorBody is the JSON body of a failed export.
type errorBody struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	TaskID      string   `json:"task_id,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// handleExport renders the posted task list.
// POST /export?expand=all|none|id,id
//
// Returns:
//   - 200 image/svg+xml with a Content-Disposition attachment filename
//   - 400 JSON error: empty task list or malformed task
//   - 413 JSON error: body larger than MaxBodyBytes
//   - 422 JSON error: chart would exceed its size limits
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "", "method not allowed", nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "", fmt.Sprintf("reading request body: %v", err), nil)
		return
	}

	tasks, err := task.ParseJSON(body)
	if err != nil {
		s.writeChartError(w, err)
		return
	}

	sel := hierarchy.ExpandAll()
	if q := r.URL.Query(); q.Has("expand") {
		sel = hierarchy.ParseSelection(q.Get("expand"))
	}

	written := false
	sink := export.SinkFunc(func(ctx context.Context, a *export.Artifact) error {
		written = true
		w.Header().Set("Content-Type", a.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(a.Data)
		return err
	})

	if _, err := s.exporter.Export(r.Context(), tasks, sel, sink); err != nil {
		if written {
			// The status line is already on the wire; the client saw a short body.
			s.metrics.RecordHTTP(http.StatusOK)
			return
		}
		s.writeChartError(w, err)
		return
	}
	s.metrics.RecordHTTP(http.StatusOK)
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code cerrors.ErrorCode) int {
	switch code {
	case cerrors.ErrCodeEmptyInput, cerrors.ErrCodeMalformedTask, cerrors.ErrCodeFileUnmarshal:
		return http.StatusBadRequest
	case cerrors.ErrCodeGeometryOverflow:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeChartError(w http.ResponseWriter, err error) {
	code := cerrors.CodeOf(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.LogError("export request failed", err)
	}

	body := errorBody{Code: string(code), Message: err.Error()}
	var ce *cerrors.ChartError
	if stderrors.As(err, &ce) {
		body.TaskID = ce.TaskID
		body.Suggestions = ce.Suggestions
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string, suggestions []string) {
	s.writeJSON(w, status, errorBody{Code: code, Message: message, Suggestions: suggestions})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	s.metrics.RecordHTTP(status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.LogError("encoding response failed", err)
	}
}

// writeProbeResponse writes a probe result, using unhealthyStatus when the
// result is unhealthy.
func (s *Server) writeProbeResponse(w http.ResponseWriter, result *health.ProbeResult, unhealthyStatus int) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status == health.StatusUnhealthy {
		w.WriteHeader(unhealthyStatus)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// handleLiveness handles GET /health/live. It always answers 200, reporting
// degraded while shutting down.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeProbeResponse(w, s.probeManager.CheckLiveness(r.Context()), http.StatusOK)
}

// handleReadiness handles GET /health/ready and /healthz. It answers 503
// while shutting down or when the render self-check fails.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeProbeResponse(w, s.probeManager.CheckReadiness(r.Context()), http.StatusServiceUnavailable)
}

// handleStartup handles GET /health/startup. It answers 503 until Start
// has been called.
func (s *Server) handleStartup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeProbeResponse(w, s.probeManager.CheckStartup(r.Context()), http.StatusServiceUnavailable)
}
