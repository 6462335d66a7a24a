// Package api exposes the analysis service as JSON over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	service "github.com/okian/aquascore/internal/app"
	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/pkg/logger"
)

// Default request limits; overridden from configuration via options.
const (
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxResults     = 10_000
	defaultRequestTimeout = 5 * time.Second
)

// Routes.
const (
	routePerformanceOverview = "/v1/analysis/performance-overview"
	routeResultComparison    = "/v1/analysis/result-comparison"
)

// OverviewService runs performance overviews.
type OverviewService interface {
	AnalyzeOverview(ctx context.Context, athlete string, results []model.TimedResult) ([]model.EventAnalysis, error)
}

// ComparisonService runs result comparisons.
type ComparisonService interface {
	AnalyzeComparison(ctx context.Context, target model.ComparisonRecord, competitors []model.ComparisonRecord, marks model.ReferenceMarks) ([]model.ResultComparison, error)
}

// Dependencies required by HTTP handlers.
type Dependencies interface {
	OverviewService
	ComparisonService
	StatsProvider
}

// limits bounds a single request.
type limits struct {
	maxBodyBytes int64
	maxResults   int
	timeout      time.Duration
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	overviewHandler   *OverviewHandler
	comparisonHandler *ComparisonHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{
		limits: limits{
			maxBodyBytes: defaultMaxBodyBytes,
			maxResults:   defaultMaxResults,
			timeout:      defaultRequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get().Named("api")
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		overviewHandler:   &OverviewHandler{svc: deps, limits: cfg.limits, logger: cfg.logger},
		comparisonHandler: &ComparisonHandler{svc: deps, limits: cfg.limits, logger: cfg.logger},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	handle("/healthz", "healthz", s.healthHandler.HandleHealth)
	handle("/metrics", "metrics", s.healthHandler.HandleHealth)
	handle("/stats", "stats", s.statsHandler.HandleStats)
	handle(routePerformanceOverview, "performance_overview", s.overviewHandler.HandlePerformanceOverview)
	handle(routeResultComparison, "result_comparison", s.comparisonHandler.HandleResultComparison)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeServiceError maps service failures onto status codes.
func writeServiceError(ctx context.Context, w http.ResponseWriter, l logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, service.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", WrapKind(op, ErrTimeout, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	default:
		l.Error(ctx, "analysis request failed",
			logger.String("op", op),
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "internal_error",
			Message: fmt.Sprintf("an internal error occurred: %v", err),
		})
	}
}
