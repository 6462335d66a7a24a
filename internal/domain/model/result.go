// Package model contains domain models passed between layers.
package model

import "time"

// TimedResult is a single timed race result for one athlete. Lower times are better.
type TimedResult struct {
	EventDate       time.Time
	Time            float64 // seconds
	EventType       string  // grouping key, e.g. "100m freestyle(LCM)"
	CompetitionName string
}

// PersonalBest is the fastest result recorded for an event.
type PersonalBest struct {
	Time float64
	Unit string
	Date time.Time
}

// PBFreshness describes how long ago the personal best was set.
type PBFreshness struct {
	DaysSincePB int
	Label       FreshnessLabel
}

// StabilityMetric is the coefficient of variation over the most recent races.
type StabilityMetric struct {
	Value float64
	Unit  string
	Label StabilityLabel
}

// TrendMetric is the signed change in recent performance, in seconds.
// Negative values mean the athlete got faster.
type TrendMetric struct {
	Value float64
	Unit  string
	Label TrendLabel
}

// RecentRace is one entry of the recent race history.
type RecentRace struct {
	Date            time.Time
	Time            float64
	CompetitionName string
}

// TrendChart holds the series for the trend chart plus the personal best reference line.
type TrendChart struct {
	Dates  []time.Time
	Times  []float64
	PBLine float64
}

// Charts groups chart-ready series for an event.
type Charts struct {
	Sparkline  []float64
	TrendChart TrendChart
}

// EventAnalysis is the performance overview of a single event type.
type EventAnalysis struct {
	EventName    string
	PersonalBest PersonalBest
	PBFreshness  PBFreshness
	Stability    StabilityMetric
	Trend        TrendMetric
	RecentRaces  []RecentRace
	Charts       Charts
}
