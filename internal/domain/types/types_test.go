package types_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOverviewRequest(t *testing.T) {
	Convey("Given an overview request", t, func() {
		req := types.OverviewRequest{
			AthleteName: "Jane",
			Results: []types.PerformanceResult{
				{EventDate: "2024-03-01T09:30:00Z", ResultTime: 60.12, EventType: "100m freestyle(LCM)", CompetitionName: "Spring Open"},
				{EventDate: "2024-04-02", ResultTime: 59.9, EventType: "100m freestyle(LCM)", CompetitionName: "Nationals"},
			},
		}

		Convey("When it is well formed", func() {
			So(req.Validate(10), ShouldBeNil)

			Convey("Then both date forms convert", func() {
				res, err := req.TimedResults()
				So(err, ShouldBeNil)
				So(res, ShouldHaveLength, 2)
				So(res[0].EventDate.Equal(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)), ShouldBeTrue)
				So(res[1].EventDate.Equal(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
				So(res[1].CompetitionName, ShouldEqual, "Nationals")
			})
		})

		Convey("When the athlete is missing", func() {
			req.AthleteName = ""
			So(errors.Is(req.Validate(10), types.ErrMissingAthlete), ShouldBeTrue)
		})

		Convey("When an event type is missing", func() {
			req.Results[1].EventType = ""
			err := req.Validate(10)
			So(errors.Is(err, types.ErrMissingEventType), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "results[1]")
		})

		Convey("When a date is unparsable", func() {
			req.Results[0].EventDate = "03/01/2024"
			So(errors.Is(req.Validate(10), types.ErrInvalidEventDate), ShouldBeTrue)
			_, err := req.TimedResults()
			So(errors.Is(err, types.ErrInvalidEventDate), ShouldBeTrue)
		})

		Convey("When there are more results than allowed", func() {
			So(errors.Is(req.Validate(1), types.ErrTooManyResults), ShouldBeTrue)
			So(req.Validate(0), ShouldBeNil)
		})
	})
}

func TestNewOverviewResponse(t *testing.T) {
	Convey("Given a domain analysis", t, func() {
		d1 := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
		d2 := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
		analysis := model.EventAnalysis{
			EventName:    "50m(SCM)",
			PersonalBest: model.PersonalBest{Time: 25.1, Unit: model.UnitSeconds, Date: d1},
			PBFreshness:  model.PBFreshness{DaysSincePB: 12, Label: model.FreshnessHotStreak},
			Stability:    model.StabilityMetric{Value: 1.2, Unit: model.UnitPercent, Label: model.StabilityHigh},
			Trend:        model.TrendMetric{Value: 0.3, Unit: model.UnitSeconds, Label: model.TrendDeclining},
			RecentRaces:  []model.RecentRace{{Date: d1, Time: 25.1, CompetitionName: "A"}, {Date: d2, Time: 25.4, CompetitionName: "B"}},
			Charts: model.Charts{
				Sparkline:  []float64{25.1, 25.4},
				TrendChart: model.TrendChart{Dates: []time.Time{d1, d2}, Times: []float64{25.1, 25.4}, PBLine: 25.1},
			},
		}

		resp := types.NewOverviewResponse([]model.EventAnalysis{analysis})

		Convey("Then dates are rendered as calendar dates", func() {
			ev := resp.EventAnalyses[0]
			So(ev.PersonalBest.Date, ShouldEqual, "2024-03-01")
			So(ev.RecentRaces[1].Date, ShouldEqual, "2024-04-02")
			So(ev.Charts.TrendChart.Dates, ShouldResemble, []string{"2024-03-01", "2024-04-02"})
		})

		Convey("And labels and units are carried as strings", func() {
			ev := resp.EventAnalyses[0]
			So(ev.Analysis.Stability.Label, ShouldEqual, "high")
			So(ev.Analysis.Stability.Unit, ShouldEqual, "%")
			So(ev.Analysis.Trend.Label, ShouldEqual, "declining")
			So(ev.Analysis.PBFreshness.Label, ShouldEqual, "hot_streak")
		})

		Convey("And the JSON uses the documented field names", func() {
			raw, err := json.Marshal(resp)
			So(err, ShouldBeNil)
			s := string(raw)
			So(s, ShouldContainSubstring, `"event_analyses"`)
			So(s, ShouldContainSubstring, `"pb_freshness":{"days_since_pb":12,"label":"hot_streak"}`)
			So(s, ShouldContainSubstring, `"pb_line":25.1`)
		})
	})

	Convey("Given no analyses", t, func() {
		raw, err := json.Marshal(types.NewOverviewResponse(nil))
		So(err, ShouldBeNil)
		So(string(raw), ShouldEqual, `{"event_analyses":[]}`)
	})
}

func TestComparisonRequest(t *testing.T) {
	Convey("Given a comparison request body", t, func() {
		body := `{
			"target_result": {"athlete_name": "A", "record_time": 10.5, "rank": 2},
			"competition_results": [{"athlete_name": "B", "record_time": 10.0, "rank": 1}],
			"records": {"national_record": 0}
		}`
		var req types.ComparisonRequest
		So(json.NewDecoder(strings.NewReader(body)).Decode(&req), ShouldBeNil)
		So(req.Validate(), ShouldBeNil)

		Convey("Then a present zero record is kept and an absent one stays nil", func() {
			target, competitors, marks := req.Domain()
			So(target.AthleteName, ShouldEqual, "A")
			So(competitors, ShouldHaveLength, 1)
			So(marks.NationalRecord, ShouldNotBeNil)
			So(*marks.NationalRecord, ShouldEqual, 0)
			So(marks.GamesRecord, ShouldBeNil)
		})

		Convey("And a nameless competitor is rejected", func() {
			req.CompetitionResults = append(req.CompetitionResults, types.RaceResult{RecordTime: 11})
			err := req.Validate()
			So(errors.Is(err, types.ErrMissingAthlete), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "competition_results[1]")
		})
	})
}

func TestNewComparisonResponse(t *testing.T) {
	Convey("Given comparisons with and without diffs", t, func() {
		resp := types.NewComparisonResponse([]model.ResultComparison{
			{AthleteName: "B", RecordTime: 10.0, Rank: 1, DiffFromTarget: model.Float(-0.5)},
			{AthleteName: "A", RecordTime: 10.5, Rank: 2},
		})
		raw, err := json.Marshal(resp)
		So(err, ShouldBeNil)
		s := string(raw)

		Convey("Then absent diffs are omitted rather than zero", func() {
			So(s, ShouldContainSubstring, `"diff_from_target":-0.5`)
			So(s, ShouldNotContainSubstring, `"diff_from_national_record"`)
			So(s, ShouldEndWith, `{"athlete_name":"A","record_time":10.5,"rank":2}]}`)
		})
	})
}
