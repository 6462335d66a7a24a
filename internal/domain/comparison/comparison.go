// Package comparison measures every athlete in a race against the national
// record, the games record and a chosen target athlete.
package comparison

import (
	"cmp"
	"slices"

	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/internal/domain/stats"
)

// Analyzer builds race comparisons. It holds no state.
type Analyzer struct{}

// NewAnalyzer creates a comparison analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze merges the target into the competitor list by athlete name and
// returns one comparison per distinct athlete, ordered by rank ascending.
//
// A later record with an already seen name replaces the earlier one but keeps
// its position, so a target that also appears among the competitors is
// reported once, at the competitor's position, with the target's data.
// Equal ranks keep that merged order.
func (a *Analyzer) Analyze(target model.ComparisonRecord, competitors []model.ComparisonRecord, marks model.ReferenceMarks) []model.ResultComparison {
	merged := merge(target, competitors)

	out := make([]model.ResultComparison, 0, len(merged))
	for _, r := range merged {
		c := model.ResultComparison{
			AthleteName: r.AthleteName,
			RecordTime:  r.RecordTime,
			Rank:        r.Rank,
		}
		if marks.NationalRecord != nil {
			c.DiffFromNationalRecord = model.Float(stats.Diff(r.RecordTime, *marks.NationalRecord))
		}
		if marks.GamesRecord != nil {
			c.DiffFromGamesRecord = model.Float(stats.Diff(r.RecordTime, *marks.GamesRecord))
		}
		if r.AthleteName != target.AthleteName {
			c.DiffFromTarget = model.Float(stats.Diff(r.RecordTime, target.RecordTime))
		}
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(x, y model.ResultComparison) int {
		return cmp.Compare(x.Rank, y.Rank)
	})
	return out
}

func merge(target model.ComparisonRecord, competitors []model.ComparisonRecord) []model.ComparisonRecord {
	merged := make([]model.ComparisonRecord, 0, len(competitors)+1)
	index := make(map[string]int, len(competitors)+1)
	put := func(r model.ComparisonRecord) {
		if i, ok := index[r.AthleteName]; ok {
			merged[i] = r
			return
		}
		index[r.AthleteName] = len(merged)
		merged = append(merged, r)
	}
	for _, r := range competitors {
		put(r)
	}
	put(target)
	return merged
}
