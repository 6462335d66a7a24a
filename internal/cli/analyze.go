package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/aquascore/internal/domain/types"
)

func newOverviewCmd(c *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Summarize an athlete's results per event.",
		Long: `Read a performance overview request (athlete_name plus results) as JSON and
print the personal best, PB freshness, stability, trend and recent races for
every event type.`,
		Example: `  aquascore overview --input results.json
  cat results.json | aquascore overview --input - --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.OverviewRequest
			if err := c.decodeInput(cmd, &req); err != nil {
				return err
			}
			if athlete := c.v.GetString("athlete"); athlete != "" {
				req.AthleteName = athlete
			}
			if err := req.Validate(c.cfg.MaxResults); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			results, err := req.TimedResults()
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			ow, err := c.outWriter(cmd)
			if err != nil {
				return err
			}
			svc, err := c.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			analyses, err := svc.AnalyzeOverview(cmd.Context(), req.AthleteName, results)
			if err != nil {
				return err
			}
			return ow.WriteOverview(req.AthleteName, types.NewOverviewResponse(analyses))
		},
	}
	cmd.Flags().StringP("input", "i", "-", "Request JSON file, or - for stdin")
	cmd.Flags().String("athlete", "", "Override the athlete name in the input")
	return cmd
}

func newCompareCmd(c *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a target result with the field and reference records.",
		Long: `Read a result comparison request (target_result, competition_results and
optional records) as JSON and print each athlete's gaps to the records and to
the target, sorted by rank.`,
		Example: `  aquascore compare --input final.json --output csv --output-file final.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.ComparisonRequest
			if err := c.decodeInput(cmd, &req); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			ow, err := c.outWriter(cmd)
			if err != nil {
				return err
			}
			svc, err := c.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			target, competitors, marks := req.Domain()
			rows, err := svc.AnalyzeComparison(cmd.Context(), target, competitors, marks)
			if err != nil {
				return err
			}
			return ow.WriteComparison(types.NewComparisonResponse(rows))
		},
	}
	cmd.Flags().StringP("input", "i", "-", "Request JSON file, or - for stdin")
	return cmd
}

func (c *runner) decodeInput(cmd *cobra.Command, dst any) error {
	in, err := openInput(cmd, c.v.GetString("input"))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := json.NewDecoder(in).Decode(dst); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}
