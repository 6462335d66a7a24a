package model

// Units carried on metrics.
const (
	UnitSeconds = "s"
	UnitPercent = "%"
)

// FreshnessLabel classifies how recently a personal best was set.
type FreshnessLabel string

const (
	FreshnessHotStreak          FreshnessLabel = "hot_streak"
	FreshnessStable             FreshnessLabel = "stable"
	FreshnessNotUpdatedRecently FreshnessLabel = "not_updated_recently"
)

// StabilityLabel classifies the coefficient of variation. Lower CV is more stable.
type StabilityLabel string

const (
	StabilityHigh   StabilityLabel = "high"
	StabilityMedium StabilityLabel = "medium"
	StabilityLow    StabilityLabel = "low"
)

// TrendLabel classifies a trend value.
type TrendLabel string

const (
	TrendImproving TrendLabel = "improving"
	TrendDeclining TrendLabel = "declining"
	TrendStable    TrendLabel = "stable"
)
