// Package types contains the JSON request and response shapes shared by the
// HTTP API, the MCP tools and the command line.
package types

// DateLayout is the calendar-date format used in every response.
const DateLayout = "2006-01-02"

// PerformanceResult is one race result in an overview request.
type PerformanceResult struct {
	EventDate       string  `json:"event_date"`
	ResultTime      float64 `json:"result_time"`
	EventType       string  `json:"event_type"`
	CompetitionName string  `json:"competition_name"`
}

// OverviewRequest asks for a performance overview of one athlete.
type OverviewRequest struct {
	AthleteName string              `json:"athlete_name"`
	Results     []PerformanceResult `json:"results"`
}

// OverviewResponse is the performance overview grouped by event.
type OverviewResponse struct {
	EventAnalyses []EventPerformanceAnalysis `json:"event_analyses"`
}

// EventPerformanceAnalysis is the overview of one event type.
type EventPerformanceAnalysis struct {
	EventName    string       `json:"event_name"`
	PersonalBest PersonalBest `json:"personal_best"`
	Analysis     Analysis     `json:"analysis"`
	RecentRaces  []RecentRace `json:"recent_races"`
	Charts       Charts       `json:"charts"`
}

type PersonalBest struct {
	Time float64 `json:"time"`
	Unit string  `json:"unit"`
	Date string  `json:"date"`
}

type Analysis struct {
	Stability   Metric      `json:"stability"`
	Trend       Metric      `json:"trend"`
	PBFreshness PBFreshness `json:"pb_freshness"`
}

// Metric is a labelled numeric value.
type Metric struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Label string  `json:"label"`
}

type PBFreshness struct {
	DaysSincePB int    `json:"days_since_pb"`
	Label       string `json:"label"`
}

type RecentRace struct {
	Date            string  `json:"date"`
	Time            float64 `json:"time"`
	CompetitionName string  `json:"competition_name"`
}

type Charts struct {
	Sparkline  []float64  `json:"sparkline"`
	TrendChart TrendChart `json:"trend_chart"`
}

type TrendChart struct {
	Dates  []string  `json:"dates"`
	Times  []float64 `json:"times"`
	PBLine float64   `json:"pb_line"`
}

// RaceResult is one athlete's line in a race.
type RaceResult struct {
	AthleteName string  `json:"athlete_name"`
	RecordTime  float64 `json:"record_time"`
	Rank        int     `json:"rank"`
}

// RecordMarks are the optional reference records for a race.
type RecordMarks struct {
	NationalRecord *float64 `json:"national_record,omitempty"`
	GamesRecord    *float64 `json:"games_record,omitempty"`
}

// ComparisonRequest asks for a comparison of a target athlete with the field.
type ComparisonRequest struct {
	TargetResult       RaceResult   `json:"target_result"`
	CompetitionResults []RaceResult `json:"competition_results"`
	Records            RecordMarks  `json:"records"`
}

// ResultComparison is one row of the comparison response. Diffs that do not
// apply are omitted from the JSON.
type ResultComparison struct {
	AthleteName            string   `json:"athlete_name"`
	RecordTime             float64  `json:"record_time"`
	Rank                   int      `json:"rank"`
	DiffFromNationalRecord *float64 `json:"diff_from_national_record,omitempty"`
	DiffFromGamesRecord    *float64 `json:"diff_from_games_record,omitempty"`
	DiffFromTarget         *float64 `json:"diff_from_target,omitempty"`
}

// ComparisonResponse lists the comparisons ordered by rank.
type ComparisonResponse struct {
	ResultsComparison []ResultComparison `json:"results_comparison"`
}
