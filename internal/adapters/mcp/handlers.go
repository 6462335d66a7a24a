package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/okian/aquascore/internal/domain/types"
	"github.com/okian/aquascore/pkg/logger"
)

type toolHandler struct {
	svc        Analyzer
	maxResults int
	log        logger.Logger
}

func newToolHandler(svc Analyzer, opts ...Option) *toolHandler {
	h := &toolHandler{svc: svc}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = logger.Get().Named("mcp")
	}
	return h
}

func (h *toolHandler) handlePerformanceOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req types.OverviewRequest
	if err := decodeArguments(request, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if err := req.Validate(h.maxResults); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	results, err := req.TimedResults()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	analyses, err := h.svc.AnalyzeOverview(ctx, req.AthleteName, results)
	if err != nil {
		h.log.Warn(ctx, "overview tool failed", logger.String("athlete", req.AthleteName), logger.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return textResult(types.NewOverviewResponse(analyses))
}

func (h *toolHandler) handleResultComparison(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req types.ComparisonRequest
	if err := decodeArguments(request, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	target, competitors, marks := req.Domain()
	rows, err := h.svc.AnalyzeComparison(ctx, target, competitors, marks)
	if err != nil {
		h.log.Warn(ctx, "comparison tool failed", logger.String("athlete", target.AthleteName), logger.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return textResult(types.NewComparisonResponse(rows))
}

// decodeArguments maps the loosely typed tool arguments onto a request struct.
func decodeArguments(request mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
