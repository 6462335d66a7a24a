// Package testrequests drives a running aquascore server with synthetic
// athletes and checks every answer against the in-process analyzers.
package testrequests

import (
	"time"

	"github.com/okian/aquascore/internal/domain/types"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumAthletes int           // Number of synthetic athletes
	Workers     int           // Number of concurrent request workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Where to save generated requests; empty skips saving
	Verbose     bool          // Log every mismatch in full
}

// Case is the pair of requests generated for one athlete.
type Case struct {
	Athlete    string                  `json:"athlete"`
	Overview   types.OverviewRequest   `json:"overview"`
	Comparison types.ComparisonRequest `json:"comparison"`
}

// Stats holds run statistics.
type Stats struct {
	AthletesGenerated    int
	OverviewsSubmitted   int
	OverviewsMatched     int
	ComparisonsSubmitted int
	ComparisonsMatched   int
	Mismatches           int
	Failed               int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
