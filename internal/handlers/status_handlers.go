package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
	"weather-testdata/pkg/progress"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StatusHandler serves live run status while data is being generated
type StatusHandler struct {
	tracker *progress.Tracker
	health  HealthChecker
	runID   string
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewStatusHandler creates a new status handler. health may be nil when the
// run has no external dependency.
func NewStatusHandler(
	tracker *progress.Tracker,
	health HealthChecker,
	runID string,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *StatusHandler {
	return &StatusHandler{
		tracker: tracker,
		health:  health,
		runID:   runID,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ProgressResponse is the body of GET /api/progress
type ProgressResponse struct {
	RunID string `json:"run_id"`
	progress.Snapshot
}

// GetProgress handles GET /api/progress
func (h *StatusHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, ProgressResponse{
		RunID:    h.runID,
		Snapshot: h.tracker.Snapshot(),
	}, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *StatusHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.health != nil {
		if err := h.health.HealthCheck(ctx); err != nil {
			h.logger.Warn(ctx, "[HEALTH_CHECK_FAILED] Dependency health check failed", logging.Fields{
				"error": err.Error(),
			})
			h.sendError(w, "dependency unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

func (h *StatusHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *StatusHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// instrument records request counts and durations per route template
func (h *StatusHandler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		h.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
		h.metrics.RecordAPIRequest(endpoint, r.Method, strconv.Itoa(rec.status))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RegisterRoutes registers the status API and the Prometheus endpoint
func (h *StatusHandler) RegisterRoutes(router *mux.Router) {
	router.Use(h.instrument)
	router.HandleFunc("/api/progress", h.GetProgress).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/docs/openapi.json", h.OpenAPISpec).Methods(http.MethodGet)
	router.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
}
