package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/orbitalgrid/link-impact-service/internal/domain"
	"github.com/orbitalgrid/link-impact-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and synchronous assessment
// HTTP endpoints.
type Server struct {
	httpServer    *http.Server
	logger        *slog.Logger
	metrics       *observability.Metrics
	cache         *lruCache
	defaultTarget float64
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /v1/assessments routes. defaultTarget fills in the SLA target for
// requests that omit it; cacheSize bounds the assessment memo.
func NewServer(addr string, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger, defaultTarget float64, cacheSize int) *Server {
	mux := http.NewServeMux()

	if defaultTarget <= 0 {
		defaultTarget = domain.DefaultTargetAvailabilityPercent
	}
	if cacheSize <= 0 {
		cacheSize = 1000
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:        logger,
		metrics:       metrics,
		cache:         newLRUCache(cacheSize),
		defaultTarget: defaultTarget,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/assessments", s.handleAssess)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleAssess runs the weather impact model for one station synchronously.
// Results are memoized: the model is deterministic, so identical requests
// always produce the same assessment.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req domain.AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	if req.TargetAvailabilityPercent <= 0 {
		req.TargetAvailabilityPercent = s.defaultTarget
	}

	key, err := json.Marshal(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	assessment, ok := s.cache.get(string(key))
	if ok {
		s.metrics.AssessCache.WithLabelValues("hit").Inc()
	} else {
		s.metrics.AssessCache.WithLabelValues("miss").Inc()
		assessment, err = domain.Assess(
			req.StationID,
			req.GeoPosition(),
			req.FrequencyPlan,
			req.ElevationAngles,
			req.TargetAvailabilityPercent,
		)
		if err != nil {
			s.logger.Warn("assessment rejected", "station_id", req.StationID, "error", err)
			writeJSON(w, statusForAssessError(err), map[string]string{"error": err.Error()})
			return
		}
		s.cache.put(string(key), assessment)
	}

	writeJSON(w, http.StatusOK, domain.StationAssessment{
		WeatherImpactAssessment: assessment,
		ProcessedAt:             domain.Now(),
	})
}

// statusForAssessError maps model precondition violations to 422 and anything
// unexpected to 500.
func statusForAssessError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidLatitude),
		errors.Is(err, domain.ErrInvalidLongitude),
		errors.Is(err, domain.ErrInvalidElevation),
		errors.Is(err, domain.ErrInvalidFrequency),
		errors.Is(err, domain.ErrEmptyFrequencyPlan):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
