package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/aquascore/internal/domain/types"
)

func (ow *OutWriter) writeOverviewTable(w io.Writer, athlete string, resp types.OverviewResponse) error {
	if _, err := fmt.Fprintf(w, "Athlete: %s\n", athlete); err != nil {
		return err
	}
	if len(resp.EventAnalyses) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	for _, e := range resp.EventAnalyses {
		if _, err := fmt.Fprintf(w, "\n%s\n", e.EventName); err != nil {
			return err
		}

		summary := tablewriter.NewWriter(w)
		summary.Header([]string{"PB", "PB Date", "Days Since PB", "Freshness", "Stability", "Trend"})
		stab, trend, fresh := e.Analysis.Stability, e.Analysis.Trend, e.Analysis.PBFreshness
		row := []string{
			ow.fmtFloat(e.PersonalBest.Time) + e.PersonalBest.Unit,
			e.PersonalBest.Date,
			strconv.Itoa(fresh.DaysSincePB),
			ow.labelColor(fresh.Label)(fresh.Label),
			fmt.Sprintf("%s%s %s", ow.fmtFloat(stab.Value), stab.Unit, ow.labelColor(stab.Label)(stab.Label)),
			fmt.Sprintf("%s%s %s", ow.fmtFloat(trend.Value), trend.Unit, ow.labelColor(trend.Label)(trend.Label)),
		}
		if err := summary.Bulk([][]string{row}); err != nil {
			return err
		}
		if err := summary.Render(); err != nil {
			return err
		}

		races := tablewriter.NewWriter(w)
		races.Header([]string{"Date", "Time", "Competition"})
		var data [][]string
		for _, r := range e.RecentRaces {
			data = append(data, []string{r.Date, ow.fmtFloat(r.Time), r.CompetitionName})
		}
		if err := races.Bulk(data); err != nil {
			return err
		}
		if err := races.Render(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d event(s) analyzed\n", len(resp.EventAnalyses))
	return err
}

func (ow *OutWriter) writeComparisonTable(w io.Writer, resp types.ComparisonResponse) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Athlete", "Time", "Δ National", "Δ Games", "Δ Target"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range resp.ResultsComparison {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			r.AthleteName,
			ow.fmtFloat(r.RecordTime),
			ow.fmtDiff(r.DiffFromNationalRecord),
			ow.fmtDiff(r.DiffFromGamesRecord),
			ow.colorDiff(r.DiffFromTarget),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d athlete(s) compared\n", len(resp.ResultsComparison))
	return err
}

// colorDiff shows athletes faster than the target in red and slower ones in green.
func (ow *OutWriter) colorDiff(v *float64) string {
	s := ow.fmtDiff(v)
	if v == nil {
		return s
	}
	switch {
	case *v < 0:
		return ow.labelColor("declining")(s)
	case *v > 0:
		return ow.labelColor("improving")(s)
	default:
		return ow.labelColor("stable")(s)
	}
}
