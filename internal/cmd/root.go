package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/boardchart/internal/log"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "boardchart",
	Short: "Render board task lists as Gantt charts",
	Long: `boardchart turns a project board's task list into a Gantt chart.

Tasks may omit start and due dates; a consistent timeline is inferred from
their status and position in the hierarchy. Each task becomes one row, with
subtasks shown under their parent when expanded. The chart is written as a
standalone SVG document.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands use for
// cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// NoColor reports whether styled output was disabled on the command line.
func NoColor() bool {
	return noColor
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "chart config file (default ./boardchart.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled terminal output")
}

// setupLogging installs the process-wide logger. Logs always go to stderr so
// charts can be streamed on stdout.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := log.ConfigFromFlags(logLevel, logFormat)
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}
	cfg.Output = cmd.ErrOrStderr()
	log.SetDefaultLogger(log.New(cfg))
	return nil
}
