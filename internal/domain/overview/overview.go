// Package overview computes per-event performance summaries from an athlete's
// result history: personal best, freshness, stability, trend, recent races and
// chart series.
package overview

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/internal/domain/stats"
)

// Window sizes, counted from the most recent result.
const (
	stabilityWindow   = 5
	trendWindow       = 3
	recentRacesWindow = 5
	sparklineWindow   = 12
	trendChartWindow  = 10
)

// Label thresholds.
const (
	hotStreakMaxDays   = 90
	stableMaxDays      = 180
	highStabilityMaxCV = 5.0
	medStabilityMaxCV  = 10.0
	trendDeadband      = 0.1
)

const hoursPerDay = 24

// Analyzer builds event analyses. The zero value is not usable; use NewAnalyzer.
type Analyzer struct {
	now func() time.Time
}

// NewAnalyzer creates an analyzer that reads the wall clock unless WithClock is given.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze groups results by event type and summarizes each group.
// Groups are returned in the order their event type first appears once the
// results are sorted by date. Empty input yields an empty, non-nil slice.
func (a *Analyzer) Analyze(results []model.TimedResult) ([]model.EventAnalysis, error) {
	for i, r := range results {
		if math.IsNaN(r.Time) || math.IsInf(r.Time, 0) {
			return nil, fmt.Errorf("result %d: %w", i, ErrInvalidTime)
		}
		if r.EventDate.IsZero() {
			return nil, fmt.Errorf("result %d: %w", i, ErrMissingDate)
		}
	}

	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(x, y model.TimedResult) int {
		return x.EventDate.Compare(y.EventDate)
	})

	var order []string
	groups := make(map[string][]model.TimedResult)
	for _, r := range sorted {
		if _, ok := groups[r.EventType]; !ok {
			order = append(order, r.EventType)
		}
		groups[r.EventType] = append(groups[r.EventType], r)
	}

	now := a.now()
	out := make([]model.EventAnalysis, 0, len(order))
	for _, event := range order {
		out = append(out, analyzeEvent(event, groups[event], now))
	}
	return out, nil
}

// analyzeEvent summarizes one date-ordered, non-empty group.
func analyzeEvent(event string, entries []model.TimedResult, now time.Time) model.EventAnalysis {
	pb := personalBest(entries)
	return model.EventAnalysis{
		EventName: event,
		PersonalBest: model.PersonalBest{
			Time: pb.Time,
			Unit: model.UnitSeconds,
			Date: pb.EventDate,
		},
		PBFreshness: freshness(pb.EventDate, now),
		Stability:   stability(entries),
		Trend:       trend(entries, pb.Time),
		RecentRaces: recentRaces(entries),
		Charts:      charts(entries, pb.Time),
	}
}

// personalBest returns the earliest entry holding the minimum time.
func personalBest(entries []model.TimedResult) model.TimedResult {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Time < best.Time {
			best = e
		}
	}
	return best
}

func freshness(pbDate, now time.Time) model.PBFreshness {
	days := int(math.Floor(now.Sub(pbDate).Hours() / hoursPerDay))
	return model.PBFreshness{DaysSincePB: days, Label: freshnessLabel(days)}
}

func freshnessLabel(days int) model.FreshnessLabel {
	switch {
	case days <= hotStreakMaxDays:
		return model.FreshnessHotStreak
	case days <= stableMaxDays:
		return model.FreshnessStable
	default:
		return model.FreshnessNotUpdatedRecently
	}
}

func stability(entries []model.TimedResult) model.StabilityMetric {
	cv := stats.Round2(stats.CoefficientOfVariation(times(tail(entries, stabilityWindow))))
	return model.StabilityMetric{Value: cv, Unit: model.UnitPercent, Label: stabilityLabel(cv)}
}

func stabilityLabel(cv float64) model.StabilityLabel {
	switch {
	case cv <= highStabilityMaxCV:
		return model.StabilityHigh
	case cv <= medStabilityMaxCV:
		return model.StabilityMedium
	default:
		return model.StabilityLow
	}
}

// trend compares the newest result in the window with the oldest one. A lone
// result is compared with the personal best instead.
func trend(entries []model.TimedResult, pbTime float64) model.TrendMetric {
	window := tail(entries, trendWindow)
	var v float64
	switch len(window) {
	case 0:
	case 1:
		v = stats.Diff(window[0].Time, pbTime)
	default:
		v = stats.Diff(window[len(window)-1].Time, window[0].Time)
	}
	return model.TrendMetric{Value: v, Unit: model.UnitSeconds, Label: trendLabel(v)}
}

func trendLabel(v float64) model.TrendLabel {
	switch {
	case v < -trendDeadband:
		return model.TrendImproving
	case v > trendDeadband:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

func recentRaces(entries []model.TimedResult) []model.RecentRace {
	window := tail(entries, recentRacesWindow)
	races := make([]model.RecentRace, 0, len(window))
	for _, e := range window {
		races = append(races, model.RecentRace{
			Date:            e.EventDate,
			Time:            e.Time,
			CompetitionName: e.CompetitionName,
		})
	}
	return races
}

func charts(entries []model.TimedResult, pbTime float64) model.Charts {
	chart := tail(entries, trendChartWindow)
	dates := make([]time.Time, 0, len(chart))
	for _, e := range chart {
		dates = append(dates, e.EventDate)
	}
	return model.Charts{
		Sparkline: times(tail(entries, sparklineWindow)),
		TrendChart: model.TrendChart{
			Dates:  dates,
			Times:  times(chart),
			PBLine: pbTime,
		},
	}
}

func times(entries []model.TimedResult) []float64 {
	out := make([]float64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Time)
	}
	return out
}

func tail[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
