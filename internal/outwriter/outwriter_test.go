package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/internal/domain/types"
)

func sampleOverview() types.OverviewResponse {
	return types.OverviewResponse{EventAnalyses: []types.EventPerformanceAnalysis{{
		EventName:    "100m free(LCM)",
		PersonalBest: types.PersonalBest{Time: 60.1, Unit: "s", Date: "2024-05-20"},
		Analysis: types.Analysis{
			Stability:   types.Metric{Value: 1.25, Unit: "%", Label: "high"},
			Trend:       types.Metric{Value: -0.4, Unit: "s", Label: "improving"},
			PBFreshness: types.PBFreshness{DaysSincePB: 12, Label: "hot_streak"},
		},
		RecentRaces: []types.RecentRace{
			{Date: "2024-05-01", Time: 60.5, CompetitionName: "Spring Open"},
			{Date: "2024-05-20", Time: 60.1, CompetitionName: "Nationals"},
		},
		Charts: types.Charts{
			Sparkline:  []float64{60.5, 60.1},
			TrendChart: types.TrendChart{Dates: []string{"2024-05-01", "2024-05-20"}, Times: []float64{60.5, 60.1}, PBLine: 60.1},
		},
	}}}
}

func sampleComparison() types.ComparisonResponse {
	return types.ComparisonResponse{ResultsComparison: []types.ResultComparison{
		{AthleteName: "B", RecordTime: 49.5, Rank: 1, DiffFromNationalRecord: model.Float(0.5), DiffFromTarget: model.Float(-0.5)},
		{AthleteName: "A", RecordTime: 50, Rank: 2, DiffFromNationalRecord: model.Float(1)},
	}}
}

func newWriter(cfg Config) (*OutWriter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	ow, err := New(cfg, &stdout, &stderr)
	So(err, ShouldBeNil)
	return ow, &stdout, &stderr
}

func TestParseFormat(t *testing.T) {
	Convey("ParseFormat", t, func() {
		f, err := ParseFormat(" JSON ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatJSON)

		f, err = ParseFormat("")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatText)

		_, err = ParseFormat("xml")
		So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given output configurations", t, func() {
		Convey("Parquet without an output file is rejected", func() {
			_, err := New(Config{Format: FormatParquet, Precision: 2}, nil, nil)
			So(errors.Is(err, ErrOutputFileRequired), ShouldBeTrue)
		})

		Convey("Out of range precision is rejected", func() {
			_, err := New(Config{Format: FormatText, Precision: 9}, nil, nil)
			So(errors.Is(err, ErrInvalidPrecision), ShouldBeTrue)
		})

		Convey("An empty format defaults to text", func() {
			ow, err := New(Config{Precision: 2}, io.Discard, io.Discard)
			So(err, ShouldBeNil)
			So(ow.cfg.Format, ShouldEqual, FormatText)
		})
	})
}

func TestWriteOverview(t *testing.T) {
	Convey("Given an overview response", t, func() {
		resp := sampleOverview()

		Convey("Text output shows the summary and recent races", func() {
			ow, out, _ := newWriter(Config{Format: FormatText, Precision: 2})
			So(ow.WriteOverview("Alice", resp), ShouldBeNil)

			s := out.String()
			So(s, ShouldContainSubstring, "Athlete: Alice")
			So(s, ShouldContainSubstring, "100m free(LCM)")
			So(s, ShouldContainSubstring, "60.10s")
			So(s, ShouldContainSubstring, "hot_streak")
			So(s, ShouldContainSubstring, "-0.40s improving")
			So(s, ShouldContainSubstring, "Nationals")
			So(s, ShouldContainSubstring, "1 event(s) analyzed")
		})

		Convey("Text output for no events says so", func() {
			ow, out, _ := newWriter(Config{Format: FormatText, Precision: 2})
			So(ow.WriteOverview("Alice", types.OverviewResponse{}), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "No results")
		})

		Convey("JSON output keeps the wire shape", func() {
			ow, out, _ := newWriter(Config{Format: FormatJSON, Precision: 2})
			So(ow.WriteOverview("Alice", resp), ShouldBeNil)

			var got types.OverviewResponse
			So(json.Unmarshal(out.Bytes(), &got), ShouldBeNil)
			So(got, ShouldResemble, resp)
			So(out.String(), ShouldContainSubstring, "\n  \"event_analyses\"")
		})

		Convey("CSV output writes one row per event", func() {
			ow, out, _ := newWriter(Config{Format: FormatCSV, Precision: 1})
			So(ow.WriteOverview("Alice", resp), ShouldBeNil)

			records, err := csv.NewReader(out).ReadAll()
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
			So(records[0], ShouldResemble, overviewCSVHeader)
			So(records[1], ShouldResemble, []string{
				"Alice", "100m free(LCM)", "60.1", "2024-05-20", "12", "hot_streak",
				"1.2", "high", "-0.4", "improving", "2",
			})
		})

		Convey("Parquet output round trips through a file", func() {
			path := filepath.Join(t.TempDir(), "overview.parquet")
			ow, _, errOut := newWriter(Config{Format: FormatParquet, OutputFile: path, Precision: 2})
			So(ow.WriteOverview("Alice", resp), ShouldBeNil)
			So(errOut.String(), ShouldContainSubstring, path)

			rows := readParquet[OverviewRow](path)
			So(rows, ShouldResemble, OverviewRows("Alice", resp))
		})
	})
}

func TestWriteComparison(t *testing.T) {
	Convey("Given a comparison response", t, func() {
		resp := sampleComparison()

		Convey("Text output marks absent diffs with a dash", func() {
			ow, out, _ := newWriter(Config{Format: FormatText, Precision: 2})
			So(ow.WriteComparison(resp), ShouldBeNil)

			s := out.String()
			So(s, ShouldContainSubstring, "-0.50")
			So(s, ShouldContainSubstring, "1.00")
			So(s, ShouldContainSubstring, " - ")
			So(s, ShouldContainSubstring, "2 athlete(s) compared")
			So(strings.Index(s, "49.50"), ShouldBeLessThan, strings.Index(s, "50.00"))
		})

		Convey("CSV output leaves absent diffs empty", func() {
			ow, out, _ := newWriter(Config{Format: FormatCSV, Precision: 2})
			So(ow.WriteComparison(resp), ShouldBeNil)

			records, err := csv.NewReader(out).ReadAll()
			So(err, ShouldBeNil)
			So(records, ShouldResemble, [][]string{
				comparisonCSVHeader,
				{"1", "B", "49.50", "0.50", "", "-0.50"},
				{"2", "A", "50.00", "1.00", "", ""},
			})
		})

		Convey("JSON output can go to a file", func() {
			path := filepath.Join(t.TempDir(), "cmp.json")
			ow, out, _ := newWriter(Config{Format: FormatJSON, OutputFile: path, Precision: 2})
			So(ow.WriteComparison(resp), ShouldBeNil)
			So(out.Len(), ShouldEqual, 0)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"diff_from_target": -0.5`)
		})

		Convey("Parquet output keeps absent diffs null", func() {
			path := filepath.Join(t.TempDir(), "cmp.parquet")
			ow, _, _ := newWriter(Config{Format: FormatParquet, OutputFile: path, Precision: 2})
			So(ow.WriteComparison(resp), ShouldBeNil)

			rows := readParquet[ComparisonRow](path)
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Athlete, ShouldEqual, "B")
			So(*rows[0].DiffFromTarget, ShouldEqual, -0.5)
			So(rows[1].DiffFromTarget, ShouldBeNil)
			So(rows[1].DiffFromGamesRecord, ShouldBeNil)
		})
	})
}

func TestLabelColor(t *testing.T) {
	Convey("Without colors labels are returned unchanged", t, func() {
		ow, _, _ := newWriter(Config{Format: FormatText, Precision: 2})
		So(ow.labelColor("declining")("declining"), ShouldEqual, "declining")
		So(ow.colorDiff(nil), ShouldEqual, "-")
		So(ow.colorDiff(model.Float(0.25)), ShouldEqual, "0.25")
	})
}

func readParquet[T any](path string) []T {
	file, err := os.Open(path)
	So(err, ShouldBeNil)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		So(err, ShouldBeNil)
	}
	return rows[:n]
}
