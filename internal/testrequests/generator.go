package testrequests

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/okian/aquascore/internal/domain/stats"
	"github.com/okian/aquascore/internal/domain/types"
	"github.com/okian/aquascore/pkg/logger"
)

const randomFloatDivisor = 1_000_000

// Generation ranges.
const (
	maxEventsPerAthlete = 4
	maxResultsPerEvent  = 15
	minFieldSize        = 3
	maxFieldSize        = 8
	historyDays         = 730
	noiseSeconds        = 1.5
	driftPerMonth       = 0.08
	fieldSpreadSeconds  = 3.0
)

// swimEvent is a distance/stroke with a typical senior time in seconds.
type swimEvent struct {
	name     string
	baseTime float64
}

var (
	swimEvents = []swimEvent{
		{"50m freestyle", 24.5},
		{"100m freestyle", 53.0},
		{"200m freestyle", 118.0},
		{"100m backstroke", 59.5},
		{"100m breaststroke", 66.0},
		{"100m butterfly", 57.5},
		{"200m individual medley", 132.0},
	}
	pools        = []string{"LCM", "SCM"}
	competitions = []string{"Spring Open", "National Championships", "City Cup", "Club Time Trial", "Summer Games", "Winter Invitational"}
)

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [lo, hi].
func randomInt(lo, hi int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	return lo + int(n.Int64())
}

// generateCases creates one Case per athlete, each with a unique UUID name.
func generateCases(ctx context.Context, cfg *Config, now time.Time, st *Stats) ([]Case, error) {
	logger.Get().Info(ctx, "generating synthetic athletes", logger.Int("athletes", cfg.NumAthletes))

	cases := make([]Case, 0, cfg.NumAthletes)
	for i := 0; i < cfg.NumAthletes; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		cases = append(cases, generateCase(uuid.NewString(), now))
	}

	st.AthletesGenerated = len(cases)
	logger.Get().Info(ctx, "generated athletes successfully", logger.Int("count", len(cases)))
	return cases, nil
}

// generateCase builds a multi-event history plus a final race for athlete.
func generateCase(athlete string, now time.Time) Case {
	return Case{
		Athlete:    athlete,
		Overview:   generateOverview(athlete, now),
		Comparison: generateComparison(athlete),
	}
}

func generateOverview(athlete string, now time.Time) types.OverviewRequest {
	req := types.OverviewRequest{AthleteName: athlete}

	numEvents := randomInt(1, maxEventsPerAthlete)
	for _, idx := range pickDistinct(len(swimEvents), numEvents) {
		ev := swimEvents[idx]
		pool := pools[randomInt(0, len(pools)-1)]
		eventType := fmt.Sprintf("%s(%s)", ev.name, pool)

		// Athletes either improve or fade over their history.
		drift := driftPerMonth
		if getRandomFloat() < 0.5 {
			drift = -drift
		}
		base := ev.baseTime * (1 + getRandomFloat()*0.15)

		n := randomInt(1, maxResultsPerEvent)
		for r := 0; r < n; r++ {
			daysAgo := randomInt(0, historyDays)
			date := now.AddDate(0, 0, -daysAgo).UTC()
			t := base + drift*float64(historyDays-daysAgo)/30 + (getRandomFloat()-0.5)*noiseSeconds
			req.Results = append(req.Results, types.PerformanceResult{
				EventDate:       date.Format(types.DateLayout),
				ResultTime:      stats.Round2(t),
				EventType:       eventType,
				CompetitionName: competitions[randomInt(0, len(competitions)-1)],
			})
		}
	}
	return req
}

// generateComparison places athlete in a random final and ranks the field by time.
func generateComparison(athlete string) types.ComparisonRequest {
	ev := swimEvents[randomInt(0, len(swimEvents)-1)]

	field := []types.RaceResult{{AthleteName: athlete, RecordTime: stats.Round2(ev.baseTime + getRandomFloat()*fieldSpreadSeconds)}}
	for i := randomInt(minFieldSize, maxFieldSize); i > 0; i-- {
		field = append(field, types.RaceResult{
			AthleteName: uuid.NewString(),
			RecordTime:  stats.Round2(ev.baseTime + getRandomFloat()*fieldSpreadSeconds),
		})
	}
	slices.SortStableFunc(field, func(a, b types.RaceResult) int {
		switch {
		case a.RecordTime < b.RecordTime:
			return -1
		case a.RecordTime > b.RecordTime:
			return 1
		}
		return 0
	})

	req := types.ComparisonRequest{}
	for i := range field {
		field[i].Rank = i + 1
		if field[i].AthleteName == athlete {
			req.TargetResult = field[i]
			continue
		}
		req.CompetitionResults = append(req.CompetitionResults, field[i])
	}

	// Records are optional so both diff shapes are exercised.
	if getRandomFloat() < 0.7 {
		nr := stats.Round2(ev.baseTime * 0.97)
		req.Records.NationalRecord = &nr
	}
	if getRandomFloat() < 0.5 {
		gr := stats.Round2(ev.baseTime * 0.985)
		req.Records.GamesRecord = &gr
	}
	return req
}

// pickDistinct returns k distinct indexes in [0, n).
func pickDistinct(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k && i < n; i++ {
		j := randomInt(i, n-1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:min(k, n)]
}
