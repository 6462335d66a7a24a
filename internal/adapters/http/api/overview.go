package api

import (
	"context"
	"net/http"

	"github.com/okian/aquascore/internal/domain/types"
	"github.com/okian/aquascore/pkg/logger"
)

// OverviewHandler serves POST /v1/analysis/performance-overview.
type OverviewHandler struct {
	svc    OverviewService
	limits limits
	logger logger.Logger
}

// HandlePerformanceOverview decodes the athlete's results, runs the analysis and
// writes one entry per event type.
func (h *OverviewHandler) HandlePerformanceOverview(w http.ResponseWriter, r *http.Request) {
	const op = "api.performance_overview"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req types.OverviewRequest
	if err := decodeJSON(w, r, h.limits.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.Validate(h.limits.maxResults); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	results, err := req.TimedResults()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.limits.timeout)
	defer cancel()

	analyses, err := h.svc.AnalyzeOverview(ctx, req.AthleteName, results)
	if err != nil {
		writeServiceError(ctx, w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewOverviewResponse(analyses))
}
