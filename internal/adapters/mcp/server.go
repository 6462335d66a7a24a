// Package mcp exposes the analyses as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/okian/aquascore/internal/domain/model"
)

// Tool names.
const (
	ToolPerformanceOverview = "analyze_performance_overview"
	ToolResultComparison    = "analyze_result_comparison"
)

// Analyzer is the subset of the analysis service the tools call.
type Analyzer interface {
	AnalyzeOverview(ctx context.Context, athlete string, results []model.TimedResult) ([]model.EventAnalysis, error)
	AnalyzeComparison(ctx context.Context, target model.ComparisonRecord, competitors []model.ComparisonRecord, marks model.ReferenceMarks) ([]model.ResultComparison, error)
}

// NewServer builds the MCP server without starting it.
func NewServer(svc Analyzer, version string, opts ...Option) *server.MCPServer {
	s := server.NewMCPServer(
		"aquascore",
		version,
		server.WithLogging(),
	)

	h := newToolHandler(svc, opts...)

	s.AddTool(mcp.NewTool(ToolPerformanceOverview,
		mcp.WithDescription("Summarize an athlete's timed results per event: personal best, PB freshness, stability, trend, recent races and chart series."),
		mcp.WithString("athlete_name", mcp.Description("Athlete the results belong to."), mcp.Required()),
		mcp.WithArray("results",
			mcp.Description("Results as objects with event_date (RFC3339 or YYYY-MM-DD), result_time (seconds), event_type and competition_name."),
			mcp.Required(),
		),
	), h.handlePerformanceOverview)

	s.AddTool(mcp.NewTool(ToolResultComparison,
		mcp.WithDescription("Compare a target result with the rest of the field and with national and games records."),
		mcp.WithObject("target_result", mcp.Description("Target as athlete_name, record_time and rank."), mcp.Required()),
		mcp.WithArray("competition_results", mcp.Description("Other finishers in the same shape as target_result.")),
		mcp.WithObject("records", mcp.Description("Optional national_record and games_record in seconds.")),
	), h.handleResultComparison)

	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(_ context.Context, svc Analyzer, version string, opts ...Option) error {
	return server.ServeStdio(NewServer(svc, version, opts...))
}
