package testrequests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/aquascore/internal/domain/comparison"
	"github.com/okian/aquascore/internal/domain/overview"
	"github.com/okian/aquascore/internal/domain/types"
)

// verifyOverview recomputes the overview locally. The server's clock fell
// somewhere between sent and received, so either instant may produce the
// reference answer; that bounds days_since_pb drift to one day.
func verifyOverview(req types.OverviewRequest, got types.OverviewResponse, sent, received time.Time) error {
	results, err := req.TimedResults()
	if err != nil {
		return err
	}

	gotJSON, err := json.Marshal(got)
	if err != nil {
		return err
	}
	for _, at := range []time.Time{sent, received} {
		analyses, err := overview.NewAnalyzer(overview.WithClock(func() time.Time { return at })).Analyze(results)
		if err != nil {
			return err
		}
		want, err := json.Marshal(types.NewOverviewResponse(analyses))
		if err != nil {
			return err
		}
		if bytes.Equal(want, gotJSON) {
			return nil
		}
	}
	return fmt.Errorf("%w: overview for %s", ErrMismatch, req.AthleteName)
}

// verifyComparison recomputes the comparison locally and requires an exact match.
func verifyComparison(req types.ComparisonRequest, got types.ComparisonResponse) error {
	target, competitors, marks := req.Domain()
	want, err := json.Marshal(types.NewComparisonResponse(comparison.NewAnalyzer().Analyze(target, competitors, marks)))
	if err != nil {
		return err
	}
	gotJSON, err := json.Marshal(got)
	if err != nil {
		return err
	}
	if !bytes.Equal(want, gotJSON) {
		return fmt.Errorf("%w: comparison for %s", ErrMismatch, req.TargetResult.AthleteName)
	}
	return nil
}
