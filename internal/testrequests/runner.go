package testrequests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/aquascore/internal/domain/types"
	"github.com/okian/aquascore/pkg/logger"
)

const (
	directoryPermission  = 0o750
	filePermission       = 0o600
	percentageMultiplier = 100
	workerChannelFactor  = 2
)

// Run generates cases, submits them concurrently and verifies every response.
// It returns ErrVerificationFailed when any response is wrong or missing.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	st := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("testrequests")

	log.Info(ctx, "starting aquascore request test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("athletes", cfg.NumAthletes),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
	)

	client := newHTTPClient(cfg.Timeout)
	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return st, fmt.Errorf("service health check failed: %w", err)
	}

	cases, err := generateCases(ctx, cfg, time.Now(), st)
	if err != nil {
		return st, fmt.Errorf("request generation failed: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := saveCases(cfg.OutputFile, cases); err != nil {
			log.Warn(ctx, "failed to save requests to file", logger.Error(err))
		} else {
			log.Info(ctx, "requests saved to file", logger.String("filename", cfg.OutputFile))
		}
	}

	submitCases(ctx, cfg, client, cases, st, log)

	st.EndTime = time.Now()
	st.Duration = st.EndTime.Sub(st.StartTime)
	displayFinalStats(ctx, log, st)

	if st.Mismatches > 0 || st.Failed > 0 {
		return st, fmt.Errorf("%w: %d mismatches, %d failures", ErrVerificationFailed, st.Mismatches, st.Failed)
	}
	log.Info(ctx, "test completed successfully")
	return st, nil
}

func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+routeHealth)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// submitCases fans the cases out to cfg.Workers goroutines.
func submitCases(ctx context.Context, cfg *Config, client *HTTPClient, cases []Case, st *Stats, log logger.Logger) {
	var (
		overviewsSubmitted, overviewsMatched     atomic.Int64
		comparisonsSubmitted, comparisonsMatched atomic.Int64
		mismatches, failed                       atomic.Int64
	)

	record := func(c Case, kind string, err error, matched *atomic.Int64) {
		switch {
		case err == nil:
			matched.Add(1)
		case errors.Is(err, ErrMismatch):
			mismatches.Add(1)
			if cfg.Verbose {
				log.Warn(ctx, "response mismatch", logger.String("kind", kind), logger.String("athlete", c.Athlete), logger.Error(err))
			}
		default:
			failed.Add(1)
			log.Warn(ctx, "request failed", logger.String("kind", kind), logger.String("athlete", c.Athlete), logger.Error(err))
		}
	}

	workers := max(1, cfg.Workers)
	caseChan := make(chan Case, workers*workerChannelFactor)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range caseChan {
				overviewsSubmitted.Add(1)
				record(c, "overview", submitOverview(ctx, client, cfg.BaseURL, c.Overview), &overviewsMatched)

				comparisonsSubmitted.Add(1)
				record(c, "comparison", submitComparison(ctx, client, cfg.BaseURL, c.Comparison), &comparisonsMatched)
			}
		}()
	}

	go func() {
		defer close(caseChan)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- c:
			}
		}
	}()
	wg.Wait()

	st.OverviewsSubmitted = int(overviewsSubmitted.Load())
	st.OverviewsMatched = int(overviewsMatched.Load())
	st.ComparisonsSubmitted = int(comparisonsSubmitted.Load())
	st.ComparisonsMatched = int(comparisonsMatched.Load())
	st.Mismatches = int(mismatches.Load())
	st.Failed = int(failed.Load()) + 2*(len(cases)-st.OverviewsSubmitted)
}

func submitOverview(ctx context.Context, client *HTTPClient, baseURL string, req types.OverviewRequest) error {
	sent := time.Now()
	var resp types.OverviewResponse
	if err := client.PostJSON(ctx, baseURL+routeOverview, req, &resp); err != nil {
		return err
	}
	return verifyOverview(req, resp, sent, time.Now())
}

func submitComparison(ctx context.Context, client *HTTPClient, baseURL string, req types.ComparisonRequest) error {
	var resp types.ComparisonResponse
	if err := client.PostJSON(ctx, baseURL+routeComparison, req, &resp); err != nil {
		return err
	}
	return verifyComparison(req, resp)
}

// saveCases writes the generated requests as an indented JSON array.
func saveCases(filename string, cases []Case) error {
	if len(cases) == 0 {
		return ErrNothingToSave
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal requests: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, st *Stats) {
	submitted := st.OverviewsSubmitted + st.ComparisonsSubmitted
	matched := st.OverviewsMatched + st.ComparisonsMatched

	var matchRate, requestsPerSecond float64
	if submitted > 0 {
		matchRate = float64(matched) / float64(submitted) * percentageMultiplier
	}
	if st.Duration > 0 {
		requestsPerSecond = float64(submitted) / st.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("athletesGenerated", st.AthletesGenerated),
		logger.Int("overviewsSubmitted", st.OverviewsSubmitted),
		logger.Int("overviewsMatched", st.OverviewsMatched),
		logger.Int("comparisonsSubmitted", st.ComparisonsSubmitted),
		logger.Int("comparisonsMatched", st.ComparisonsMatched),
		logger.Int("mismatches", st.Mismatches),
		logger.Int("failed", st.Failed),
		logger.String("duration", st.Duration.String()),
		logger.Float64("matchRate", matchRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
