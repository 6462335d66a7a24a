package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/aquascore/internal/testrequests"
)

// Default configuration constants.
const (
	defaultNumAthletes = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:50051", "Base URL of the service")
		numAthletes = flag.Int("athletes", defaultNumAthletes, "Number of synthetic athletes")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Save generated requests as JSON to this file")
		logFile     = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Log every mismatch")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testrequests.ShowHelp(os.Stdout)
		return
	}

	closer, err := testrequests.SetupLogging(*logFile, *verbose)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &testrequests.Config{
		BaseURL:     *baseURL,
		NumAthletes: *numAthletes,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	}

	if _, err := testrequests.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		cancel()
		_ = closer.Close()
		os.Exit(1)
	}
}
