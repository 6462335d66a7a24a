// Package outwriter renders analysis results for the command line.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/okian/aquascore/internal/domain/types"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DefaultPrecision matches the two-decimal rounding of the analyses.
const DefaultPrecision = 2

const maxPrecision = 6

// ParseFormat normalizes s into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV, FormatParquet:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (must be text, json, csv or parquet)", ErrUnknownFormat, s)
	}
}

// Config controls rendering.
type Config struct {
	Format     Format
	OutputFile string
	UseColors  bool
	Precision  int
}

// Validate checks the combination of settings.
func (c Config) Validate() error {
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Precision < 0 || c.Precision > maxPrecision {
		return fmt.Errorf("%w (received %d)", ErrInvalidPrecision, c.Precision)
	}
	if c.Format == FormatParquet && c.OutputFile == "" {
		return fmt.Errorf("%s: %w", FormatParquet, ErrOutputFileRequired)
	}
	return nil
}

// OutWriter writes results to stdout or to the configured file.
type OutWriter struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
}

// New returns an OutWriter. A nil stdout or stderr falls back to the process streams.
func New(cfg Config, stdout, stderr io.Writer) (*OutWriter, error) {
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &OutWriter{cfg: cfg, stdout: stdout, stderr: stderr}, nil
}

// WriteOverview renders an athlete's performance overview.
func (ow *OutWriter) WriteOverview(athlete string, resp types.OverviewResponse) error {
	switch ow.cfg.Format {
	case FormatJSON:
		return ow.writeWithFile(func(w io.Writer) error { return writeJSON(w, resp) }, "Saved overview")
	case FormatCSV:
		return ow.writeWithFile(func(w io.Writer) error { return writeOverviewCSV(w, athlete, resp, ow.fmtFloat) }, "Saved overview CSV")
	case FormatParquet:
		return ow.writeWithFile(func(w io.Writer) error { return writeOverviewParquet(w, athlete, resp) }, "Saved overview parquet")
	default:
		return ow.writeWithFile(func(w io.Writer) error { return ow.writeOverviewTable(w, athlete, resp) }, "Saved overview table")
	}
}

// WriteComparison renders a result comparison.
func (ow *OutWriter) WriteComparison(resp types.ComparisonResponse) error {
	switch ow.cfg.Format {
	case FormatJSON:
		return ow.writeWithFile(func(w io.Writer) error { return writeJSON(w, resp) }, "Saved comparison")
	case FormatCSV:
		return ow.writeWithFile(func(w io.Writer) error { return writeComparisonCSV(w, resp, ow.fmtFloat) }, "Saved comparison CSV")
	case FormatParquet:
		return ow.writeWithFile(func(w io.Writer) error { return writeComparisonParquet(w, resp) }, "Saved comparison parquet")
	default:
		return ow.writeWithFile(func(w io.Writer) error { return ow.writeComparisonTable(w, resp) }, "Saved comparison table")
	}
}

// writeWithFile runs writer against the output file when one is set, stdout otherwise.
func (ow *OutWriter) writeWithFile(writer func(io.Writer) error, successMsg string) error {
	if ow.cfg.OutputFile == "" {
		return writer(ow.stdout)
	}

	file, err := os.Create(ow.cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writer(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	_, _ = fmt.Fprintf(ow.stderr, "%s to %s\n", successMsg, ow.cfg.OutputFile)
	return nil
}

func (ow *OutWriter) fmtFloat(v float64) string {
	return fmt.Sprintf("%.*f", ow.cfg.Precision, v)
}

func (ow *OutWriter) fmtDiff(v *float64) string {
	if v == nil {
		return "-"
	}
	return ow.fmtFloat(*v)
}

// labelColor picks a color for an analysis label.
func (ow *OutWriter) labelColor(label string) func(...any) string {
	if !ow.cfg.UseColors {
		return fmt.Sprint
	}
	switch label {
	case "improving", "high", "hot_streak":
		return color.New(color.FgGreen).SprintFunc()
	case "declining", "low", "not_updated_recently":
		return color.New(color.FgRed).SprintFunc()
	default:
		return color.New(color.FgYellow).SprintFunc()
	}
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
