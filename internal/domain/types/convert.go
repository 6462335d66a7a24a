package types

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/aquascore/internal/domain/model"
)

// Validate checks the request shape. maxResults <= 0 disables the size limit.
func (r OverviewRequest) Validate(maxResults int) error {
	if r.AthleteName == "" {
		return ErrMissingAthlete
	}
	if maxResults > 0 && len(r.Results) > maxResults {
		return fmt.Errorf("%w: %d > %d", ErrTooManyResults, len(r.Results), maxResults)
	}
	for i, res := range r.Results {
		if res.EventType == "" {
			return fmt.Errorf("results[%d]: %w", i, ErrMissingEventType)
		}
		if !validTime(res.ResultTime) {
			return fmt.Errorf("results[%d]: %w", i, ErrInvalidTime)
		}
		if _, err := ParseEventDate(res.EventDate); err != nil {
			return fmt.Errorf("results[%d]: %w", i, err)
		}
	}
	return nil
}

// TimedResults converts the request into domain results.
func (r OverviewRequest) TimedResults() ([]model.TimedResult, error) {
	out := make([]model.TimedResult, 0, len(r.Results))
	for i, res := range r.Results {
		date, err := ParseEventDate(res.EventDate)
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		out = append(out, model.TimedResult{
			EventDate:       date,
			Time:            res.ResultTime,
			EventType:       res.EventType,
			CompetitionName: res.CompetitionName,
		})
	}
	return out, nil
}

// ParseEventDate accepts an RFC3339 timestamp or a bare calendar date.
func ParseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidEventDate, s)
}

// NewOverviewResponse renders domain analyses into their wire form.
func NewOverviewResponse(analyses []model.EventAnalysis) OverviewResponse {
	out := OverviewResponse{EventAnalyses: make([]EventPerformanceAnalysis, 0, len(analyses))}
	for _, a := range analyses {
		races := make([]RecentRace, 0, len(a.RecentRaces))
		for _, r := range a.RecentRaces {
			races = append(races, RecentRace{
				Date:            r.Date.Format(DateLayout),
				Time:            r.Time,
				CompetitionName: r.CompetitionName,
			})
		}
		dates := make([]string, 0, len(a.Charts.TrendChart.Dates))
		for _, d := range a.Charts.TrendChart.Dates {
			dates = append(dates, d.Format(DateLayout))
		}
		out.EventAnalyses = append(out.EventAnalyses, EventPerformanceAnalysis{
			EventName: a.EventName,
			PersonalBest: PersonalBest{
				Time: a.PersonalBest.Time,
				Unit: a.PersonalBest.Unit,
				Date: a.PersonalBest.Date.Format(DateLayout),
			},
			Analysis: Analysis{
				Stability: Metric{Value: a.Stability.Value, Unit: a.Stability.Unit, Label: string(a.Stability.Label)},
				Trend:     Metric{Value: a.Trend.Value, Unit: a.Trend.Unit, Label: string(a.Trend.Label)},
				PBFreshness: PBFreshness{
					DaysSincePB: a.PBFreshness.DaysSincePB,
					Label:       string(a.PBFreshness.Label),
				},
			},
			RecentRaces: races,
			Charts: Charts{
				Sparkline: nonNil(a.Charts.Sparkline),
				TrendChart: TrendChart{
					Dates:  dates,
					Times:  nonNil(a.Charts.TrendChart.Times),
					PBLine: a.Charts.TrendChart.PBLine,
				},
			},
		})
	}
	return out
}

// Validate checks the comparison request shape.
func (r ComparisonRequest) Validate() error {
	if err := validateRace(r.TargetResult); err != nil {
		return fmt.Errorf("target_result: %w", err)
	}
	for i, c := range r.CompetitionResults {
		if err := validateRace(c); err != nil {
			return fmt.Errorf("competition_results[%d]: %w", i, err)
		}
	}
	for _, mark := range []*float64{r.Records.NationalRecord, r.Records.GamesRecord} {
		if mark != nil && !validTime(*mark) {
			return fmt.Errorf("records: %w", ErrInvalidTime)
		}
	}
	return nil
}

// Domain splits the request into the target, the field and the reference marks.
func (r ComparisonRequest) Domain() (model.ComparisonRecord, []model.ComparisonRecord, model.ReferenceMarks) {
	competitors := make([]model.ComparisonRecord, 0, len(r.CompetitionResults))
	for _, c := range r.CompetitionResults {
		competitors = append(competitors, c.record())
	}
	marks := model.ReferenceMarks{}
	if r.Records.NationalRecord != nil {
		marks.NationalRecord = model.Float(*r.Records.NationalRecord)
	}
	if r.Records.GamesRecord != nil {
		marks.GamesRecord = model.Float(*r.Records.GamesRecord)
	}
	return r.TargetResult.record(), competitors, marks
}

// NewComparisonResponse renders domain comparisons into their wire form.
func NewComparisonResponse(rows []model.ResultComparison) ComparisonResponse {
	out := ComparisonResponse{ResultsComparison: make([]ResultComparison, 0, len(rows))}
	for _, c := range rows {
		out.ResultsComparison = append(out.ResultsComparison, ResultComparison{
			AthleteName:            c.AthleteName,
			RecordTime:             c.RecordTime,
			Rank:                   c.Rank,
			DiffFromNationalRecord: c.DiffFromNationalRecord,
			DiffFromGamesRecord:    c.DiffFromGamesRecord,
			DiffFromTarget:         c.DiffFromTarget,
		})
	}
	return out
}

func (r RaceResult) record() model.ComparisonRecord {
	return model.ComparisonRecord{AthleteName: r.AthleteName, RecordTime: r.RecordTime, Rank: r.Rank}
}

func validateRace(r RaceResult) error {
	if r.AthleteName == "" {
		return ErrMissingAthlete
	}
	if !validTime(r.RecordTime) {
		return ErrInvalidTime
	}
	return nil
}

func validTime(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}
