package outwriter

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/okian/aquascore/internal/domain/types"
)

// OverviewRow is one event analysis flattened for columnar export.
type OverviewRow struct {
	Athlete        string  `parquet:"athlete,snappy"`
	Event          string  `parquet:"event,snappy"`
	PBTime         float64 `parquet:"pb_time,snappy"`
	PBDate         string  `parquet:"pb_date,snappy"`
	DaysSincePB    int32   `parquet:"days_since_pb,snappy"`
	PBFreshness    string  `parquet:"pb_freshness,snappy"`
	Stability      float64 `parquet:"stability,snappy"`
	StabilityLabel string  `parquet:"stability_label,snappy"`
	Trend          float64 `parquet:"trend,snappy"`
	TrendLabel     string  `parquet:"trend_label,snappy"`
	RecentRaces    int32   `parquet:"recent_races,snappy"`
}

// ComparisonRow is one compared athlete. Absent diffs are stored as nulls.
type ComparisonRow struct {
	Rank                   int32    `parquet:"rank,snappy"`
	Athlete                string   `parquet:"athlete,snappy"`
	RecordTime             float64  `parquet:"record_time,snappy"`
	DiffFromNationalRecord *float64 `parquet:"diff_from_national_record,optional,snappy"`
	DiffFromGamesRecord    *float64 `parquet:"diff_from_games_record,optional,snappy"`
	DiffFromTarget         *float64 `parquet:"diff_from_target,optional,snappy"`
}

// OverviewRows flattens resp for export.
func OverviewRows(athlete string, resp types.OverviewResponse) []OverviewRow {
	rows := make([]OverviewRow, 0, len(resp.EventAnalyses))
	for _, e := range resp.EventAnalyses {
		a := e.Analysis
		rows = append(rows, OverviewRow{
			Athlete:        athlete,
			Event:          e.EventName,
			PBTime:         e.PersonalBest.Time,
			PBDate:         e.PersonalBest.Date,
			DaysSincePB:    int32(a.PBFreshness.DaysSincePB),
			PBFreshness:    a.PBFreshness.Label,
			Stability:      a.Stability.Value,
			StabilityLabel: a.Stability.Label,
			Trend:          a.Trend.Value,
			TrendLabel:     a.Trend.Label,
			RecentRaces:    int32(len(e.RecentRaces)),
		})
	}
	return rows
}

// ComparisonRows flattens resp for export.
func ComparisonRows(resp types.ComparisonResponse) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(resp.ResultsComparison))
	for _, r := range resp.ResultsComparison {
		rows = append(rows, ComparisonRow{
			Rank:                   int32(r.Rank),
			Athlete:                r.AthleteName,
			RecordTime:             r.RecordTime,
			DiffFromNationalRecord: r.DiffFromNationalRecord,
			DiffFromGamesRecord:    r.DiffFromGamesRecord,
			DiffFromTarget:         r.DiffFromTarget,
		})
	}
	return rows
}

func writeOverviewParquet(w io.Writer, athlete string, resp types.OverviewResponse) error {
	return writeParquet(w, OverviewRows(athlete, resp))
}

func writeComparisonParquet(w io.Writer, resp types.ComparisonResponse) error {
	return writeParquet(w, ComparisonRows(resp))
}

func writeParquet[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
