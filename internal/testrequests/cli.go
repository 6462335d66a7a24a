package testrequests

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/aquascore/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging logs to stdout and to logFile. An empty logFile gets a
// timestamped name. The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	if logFile == "" {
		logFile = "test_log_" + time.Now().Format("20060102_150405") + ".log"
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file)), logger.WithLevel(level)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the request test tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `AquaScore Request Test Tool
===========================

Generates synthetic athletes, posts overview and comparison requests to a
running server and verifies each response against a local computation.

Usage:
  go run ./cmd/test-requests [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:50051")
  -athletes int
        Number of synthetic athletes (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Save generated requests as JSON to this file
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Log every mismatch
  -help
        Show this help message

Examples:
  go run ./cmd/test-requests -athletes 5000 -workers 16
  go run ./cmd/test-requests -url http://localhost:8080 -output requests.json
`)
}
