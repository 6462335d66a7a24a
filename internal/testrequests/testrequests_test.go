package testrequests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/aquascore/internal/adapters/http/api"
	service "github.com/okian/aquascore/internal/app"
	"github.com/okian/aquascore/internal/domain/types"
)

var eventTypePattern = regexp.MustCompile(`^[0-9]+m [a-z ]+\((LCM|SCM)\)$`)

func TestGenerateCase(t *testing.T) {
	Convey("Given a generated case", t, func() {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		c := generateCase("athlete-1", now)

		Convey("The overview request is valid and uses <event>(<pool>) names", func() {
			So(c.Overview.AthleteName, ShouldEqual, "athlete-1")
			So(c.Overview.Validate(0), ShouldBeNil)
			So(c.Overview.Results, ShouldNotBeEmpty)
			for _, r := range c.Overview.Results {
				So(eventTypePattern.MatchString(r.EventType), ShouldBeTrue)
				So(r.ResultTime, ShouldBeGreaterThan, 0)
				d, err := types.ParseEventDate(r.EventDate)
				So(err, ShouldBeNil)
				So(d.After(now), ShouldBeFalse)
			}
		})

		Convey("The comparison request ranks the field by time", func() {
			So(c.Comparison.Validate(), ShouldBeNil)
			So(c.Comparison.TargetResult.AthleteName, ShouldEqual, "athlete-1")

			field := append([]types.RaceResult{c.Comparison.TargetResult}, c.Comparison.CompetitionResults...)
			So(len(field), ShouldBeBetweenOrEqual, minFieldSize+1, maxFieldSize+1)
			byRank := make(map[int]float64, len(field))
			for _, r := range field {
				byRank[r.Rank] = r.RecordTime
			}
			So(byRank, ShouldHaveLength, len(field))
			for rank := 2; rank <= len(field); rank++ {
				So(byRank[rank], ShouldBeGreaterThanOrEqualTo, byRank[rank-1])
			}
		})
	})

	Convey("pickDistinct never repeats an index", t, func() {
		got := pickDistinct(5, 3)
		So(got, ShouldHaveLength, 3)
		seen := map[int]bool{}
		for _, i := range got {
			So(seen[i], ShouldBeFalse)
			seen[i] = true
		}
		So(pickDistinct(2, 5), ShouldHaveLength, 2)
	})
}

func TestVerification(t *testing.T) {
	Convey("Given a locally computed comparison", t, func() {
		c := generateCase("athlete-1", time.Now())

		Convey("A tampered response is a mismatch", func() {
			resp := types.ComparisonResponse{ResultsComparison: []types.ResultComparison{{AthleteName: "someone else"}}}
			err := verifyComparison(c.Comparison, resp)
			So(errors.Is(err, ErrMismatch), ShouldBeTrue)
		})

		Convey("A tampered overview is a mismatch", func() {
			now := time.Now()
			err := verifyOverview(c.Overview, types.OverviewResponse{}, now, now)
			So(errors.Is(err, ErrMismatch), ShouldBeTrue)
		})
	})
}

func TestRunAgainstServer(t *testing.T) {
	Convey("Given a live API backed by the analysis service", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		svc := service.New(service.WithWorkerCount(4), service.WithQueueSize(64))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc).Register(ctx, mux)
		ts := httptest.NewServer(mux)
		defer ts.Close()

		out := filepath.Join(t.TempDir(), "out", "requests.json")
		cfg := &Config{
			BaseURL:     ts.URL,
			NumAthletes: 20,
			Workers:     4,
			Timeout:     5 * time.Second,
			OutputFile:  out,
		}

		Convey("Every response matches the local analysis", func() {
			st, err := Run(ctx, cfg)
			So(err, ShouldBeNil)
			So(st.AthletesGenerated, ShouldEqual, 20)
			So(st.OverviewsMatched, ShouldEqual, 20)
			So(st.ComparisonsMatched, ShouldEqual, 20)
			So(st.Mismatches, ShouldEqual, 0)

			data, err := os.ReadFile(out)
			So(err, ShouldBeNil)
			var saved []Case
			So(json.Unmarshal(data, &saved), ShouldBeNil)
			So(saved, ShouldHaveLength, 20)
		})
	})

	Convey("Given an unreachable server", t, func() {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := Run(context.Background(), &Config{BaseURL: ts.URL, NumAthletes: 1, Workers: 1, Timeout: time.Second})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "health check")
	})
}

func TestSaveCases(t *testing.T) {
	Convey("Saving nothing is an error", t, func() {
		So(errors.Is(saveCases(filepath.Join(t.TempDir(), "x.json"), nil), ErrNothingToSave), ShouldBeTrue)
	})
}
