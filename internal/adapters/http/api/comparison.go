package api

import (
	"context"
	"net/http"

	"github.com/okian/aquascore/internal/domain/types"
	"github.com/okian/aquascore/pkg/logger"
)

// ComparisonHandler serves POST /v1/analysis/result-comparison.
type ComparisonHandler struct {
	svc    ComparisonService
	limits limits
	logger logger.Logger
}

// HandleResultComparison compares the target result with the field and the records.
func (h *ComparisonHandler) HandleResultComparison(w http.ResponseWriter, r *http.Request) {
	const op = "api.result_comparison"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req types.ComparisonRequest
	if err := decodeJSON(w, r, h.limits.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.limits.timeout)
	defer cancel()

	target, competitors, marks := req.Domain()
	rows, err := h.svc.AnalyzeComparison(ctx, target, competitors, marks)
	if err != nil {
		writeServiceError(ctx, w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewComparisonResponse(rows))
}
