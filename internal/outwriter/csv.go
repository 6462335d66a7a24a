package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/aquascore/internal/domain/types"
)

var (
	overviewCSVHeader = []string{
		"athlete", "event", "pb_time", "pb_date", "days_since_pb", "pb_freshness",
		"stability", "stability_label", "trend", "trend_label", "recent_races",
	}
	comparisonCSVHeader = []string{
		"rank", "athlete", "record_time",
		"diff_from_national_record", "diff_from_games_record", "diff_from_target",
	}
)

func writeCSVWithHeader(w io.Writer, header []string, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func writeOverviewCSV(w io.Writer, athlete string, resp types.OverviewResponse, fmtFloat func(float64) string) error {
	rows := make([][]string, 0, len(resp.EventAnalyses))
	for _, e := range resp.EventAnalyses {
		a := e.Analysis
		rows = append(rows, []string{
			athlete,
			e.EventName,
			fmtFloat(e.PersonalBest.Time),
			e.PersonalBest.Date,
			strconv.Itoa(a.PBFreshness.DaysSincePB),
			a.PBFreshness.Label,
			fmtFloat(a.Stability.Value),
			a.Stability.Label,
			fmtFloat(a.Trend.Value),
			a.Trend.Label,
			strconv.Itoa(len(e.RecentRaces)),
		})
	}
	return writeCSVWithHeader(w, overviewCSVHeader, rows)
}

func writeComparisonCSV(w io.Writer, resp types.ComparisonResponse, fmtFloat func(float64) string) error {
	cell := func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmtFloat(*v)
	}
	rows := make([][]string, 0, len(resp.ResultsComparison))
	for _, r := range resp.ResultsComparison {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.AthleteName,
			fmtFloat(r.RecordTime),
			cell(r.DiffFromNationalRecord),
			cell(r.DiffFromGamesRecord),
			cell(r.DiffFromTarget),
		})
	}
	return writeCSVWithHeader(w, comparisonCSVHeader, rows)
}
