// Package cli defines the aquascore command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	service "github.com/okian/aquascore/internal/app"
	"github.com/okian/aquascore/internal/outwriter"
	"github.com/okian/aquascore/pkg/logger"
)

// Set by linker flags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const envPrefix = "AQUASCORE"

var ErrInvalidColor = errors.New("invalid color value")

// settings is the merged view of defaults, config file, env and flags.
type settings struct {
	Config     string `mapstructure:"config"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Color      string `mapstructure:"color"`
	Precision  int    `mapstructure:"precision"`
	Workers    int    `mapstructure:"workers"`
	QueueSize  int    `mapstructure:"queue-size"`
	MaxResults int    `mapstructure:"max-results"`
	LogLevel   string `mapstructure:"log-level"`
	LogFormat  string `mapstructure:"log-format"`
}

type runner struct {
	v   *viper.Viper
	cfg settings
}

// NewRootCommand builds the command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	c := &runner{v: viper.New()}

	root := &cobra.Command{
		Use:                "aquascore",
		Short:              "Analyze swimming race results.",
		Long:               `aquascore summarizes an athlete's race history per event and compares results against the field and reference records.`,
		Version:            Version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRunE:  c.setup,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default .aquascore.yaml in . or $HOME)")
	pf.String("output", string(outwriter.FormatText), "Output format: text or json or csv or parquet")
	pf.String("output-file", "", "Optional path to write output to")
	pf.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	pf.Int("precision", outwriter.DefaultPrecision, "Decimal precision for numeric columns")
	pf.Int("workers", 4, "Number of analysis workers")
	pf.Int("queue-size", 64, "Analysis queue capacity")
	pf.Int("max-results", 10000, "Maximum results accepted per overview (0 disables the limit)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", logger.FormatText, "Log format: text or json")

	root.AddCommand(newOverviewCmd(c), newCompareCmd(c), newMCPCmd(c), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// setup merges config sources and initializes logging. Logs go to stderr so
// stdout stays free for results and the MCP protocol.
func (c *runner) setup(cmd *cobra.Command, _ []string) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.loadConfigFile(); err != nil {
		return err
	}
	if err := c.v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return logger.Init(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithLevel(c.cfg.LogLevel),
		logger.WithFormat(c.cfg.LogFormat),
	)
}

func (c *runner) loadConfigFile() error {
	if configFile := c.v.GetString("config"); configFile != "" {
		c.v.SetConfigFile(configFile)
	} else {
		c.v.SetConfigName(".aquascore")
		c.v.SetConfigType("yaml")
		c.v.AddConfigPath(".")
		c.v.AddConfigPath("$HOME")
	}

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (c *runner) outWriter(cmd *cobra.Command) (*outwriter.OutWriter, error) {
	format, err := outwriter.ParseFormat(c.cfg.Output)
	if err != nil {
		return nil, err
	}
	colors, err := parseColor(c.cfg.Color)
	if err != nil {
		return nil, err
	}
	return outwriter.New(outwriter.Config{
		Format:     format,
		OutputFile: c.cfg.OutputFile,
		UseColors:  colors,
		Precision:  c.cfg.Precision,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// startService starts an analysis service bound to ctx. The caller stops it.
func (c *runner) startService(ctx context.Context) (*service.Service, error) {
	svc := service.New(
		service.WithWorkerCount(c.cfg.Workers),
		service.WithQueueSize(c.cfg.QueueSize),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// openInput returns the named file, or stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func parseColor(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}
