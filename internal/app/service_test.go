package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	service "github.com/okian/aquascore/internal/app"
	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithLevel("error")); err != nil {
		panic(err)
	}
}

var fixedNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

type panickingOverview struct{}

func (panickingOverview) Analyze([]model.TimedResult) ([]model.EventAnalysis, error) {
	panic("corrupt input")
}

type blockingComparison struct {
	release chan struct{}
}

func (b blockingComparison) Analyze(model.ComparisonRecord, []model.ComparisonRecord, model.ReferenceMarks) []model.ResultComparison {
	<-b.release
	return nil
}

func history() []model.TimedResult {
	return []model.TimedResult{
		{EventDate: fixedNow.AddDate(0, 0, -40), Time: 61.2, EventType: "100m freestyle(LCM)", CompetitionName: "Spring"},
		{EventDate: fixedNow.AddDate(0, 0, -20), Time: 60.4, EventType: "100m freestyle(LCM)", CompetitionName: "Summer"},
		{EventDate: fixedNow.AddDate(0, 0, -10), Time: 28.0, EventType: "50m butterfly(SCM)", CompetitionName: "Cup"},
	}
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(8))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		Convey("When it has not been started", func() {
			_, err := svc.AnalyzeOverview(ctx, "Jane", history())

			Convey("Then requests are refused", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.GetStats().Started, ShouldBeFalse)
			})
		})

		Convey("When it is started and stopped", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			st := svc.GetStats()
			So(st.Started, ShouldBeTrue)
			So(st.WorkerCount, ShouldEqual, 2)
			So(st.QueueSize, ShouldEqual, 8)

			svc.Stop()
			svc.Stop()

			Convey("Then it reports stopped", func() {
				So(svc.GetStats().Started, ShouldBeFalse)
			})
		})
	})
}

func TestService_AnalyzeOverview(t *testing.T) {
	Convey("Given a started service with a fixed clock", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithClock(func() time.Time { return fixedNow }))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When analyzing an athlete's history", func() {
			out, err := svc.AnalyzeOverview(ctx, "Jane", history())

			Convey("Then one analysis per event is returned", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 2)
				So(out[0].EventName, ShouldEqual, "100m freestyle(LCM)")
				So(out[0].PersonalBest.Time, ShouldEqual, 60.4)
				So(out[0].PBFreshness.DaysSincePB, ShouldEqual, 20)
				So(out[0].Trend.Value, ShouldEqual, -0.8)
				So(out[1].EventName, ShouldEqual, "50m butterfly(SCM)")
			})

			Convey("And the stats count it", func() {
				So(svc.GetStats().AnalysesServed, ShouldEqual, 1)
			})
		})

		Convey("When the input is invalid", func() {
			bad := history()
			bad[1].EventDate = time.Time{}
			_, err := svc.AnalyzeOverview(ctx, "Jane", bad)

			Convey("Then the whole request fails", func() {
				So(errors.Is(err, service.ErrAnalysisFailed), ShouldBeTrue)
				So(svc.GetStats().AnalysesFailed, ShouldEqual, 1)
			})
		})
	})

	Convey("Given an analyzer that panics", t, func() {
		svc := service.New(service.WithWorkerCount(1), service.WithOverviewAnalyzer(panickingOverview{}))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.AnalyzeOverview(ctx, "Jane", history())

		Convey("Then the panic becomes an analysis failure", func() {
			So(errors.Is(err, service.ErrAnalysisFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "corrupt input")
		})
	})
}

func TestService_AnalyzeComparison(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(4))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		target := model.ComparisonRecord{AthleteName: "A", RecordTime: 10.5, Rank: 2}
		field := []model.ComparisonRecord{
			{AthleteName: "B", RecordTime: 10.0, Rank: 1},
			{AthleteName: "C", RecordTime: 11.0, Rank: 3},
		}
		marks := model.ReferenceMarks{NationalRecord: model.Float(9.5), GamesRecord: model.Float(9.8)}

		Convey("When comparing a race", func() {
			out, err := svc.AnalyzeComparison(ctx, target, field, marks)

			Convey("Then results come back ordered by rank", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 3)
				So(out[0].AthleteName, ShouldEqual, "B")
				So(*out[1].DiffFromGamesRecord, ShouldEqual, 0.7)
				So(out[1].DiffFromTarget, ShouldBeNil)
			})
		})

		Convey("When many requests run concurrently", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 40)
			for i := 0; i < 40; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.AnalyzeComparison(ctx, target, field, marks)
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			Convey("Then all succeed", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
				So(svc.GetStats().AnalysesServed, ShouldEqual, 40)
			})
		})
	})
}

// waitFor polls cond until it holds or timeout elapses.
func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestService_Backpressure(t *testing.T) {
	Convey("Given one busy worker and a queue of one", t, func() {
		release := make(chan struct{})
		svc := service.New(
			service.WithWorkerCount(1),
			service.WithQueueSize(1),
			service.WithComparisonAnalyzer(blockingComparison{release: release}),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		defer close(release)

		target := model.ComparisonRecord{AthleteName: "A", RecordTime: 10, Rank: 1}
		call := func() {
			go func() { _, _ = svc.AnalyzeComparison(ctx, target, nil, model.ReferenceMarks{}) }()
		}

		call()
		So(waitFor(func() bool { return svc.GetStats().BusyWorkers == 1 }, 2*time.Second), ShouldBeTrue)

		Convey("When the queue is full", func() {
			call()
			So(waitFor(func() bool { return svc.GetStats().QueueLength == 1 }, 2*time.Second), ShouldBeTrue)

			_, err := svc.AnalyzeComparison(ctx, target, nil, model.ReferenceMarks{})

			Convey("Then the request is rejected with backpressure", func() {
				So(errors.Is(err, service.ErrBackpressure), ShouldBeTrue)
			})
		})

		Convey("When the caller gives up while waiting", func() {
			short, scancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer scancel()

			_, err := svc.AnalyzeComparison(short, target, nil, model.ReferenceMarks{})

			Convey("Then a timeout error is returned", func() {
				So(errors.Is(err, service.ErrTimeout), ShouldBeTrue)
			})
		})
	})
}
