package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/boardchart/internal/task"
	"github.com/felixgeelhaar/boardchart/internal/ux"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the inferred timeline without rendering a chart",
	Long: `Print each row's resolved interval and bar geometry.

Dates marked with ~ were inferred because the task did not carry them.
Use --format json or yaml to feed the timeline into other tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimeline(cmd.Context(), cmd.OutOrStdout(), &timelineFlags)
	},
}

var timelineFlags chartFlags

func init() {
	timelineFlags.register(timelineCmd)
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(ctx context.Context, stdout io.Writer, flags *chartFlags) error {
	tasks, err := task.LoadFile(flags.in)
	if err != nil {
		return err
	}
	exporter, err := newExporter(flags, chartOverrides{})
	if err != nil {
		return err
	}
	tl, err := exporter.Plan(tasks, flags.selection())
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(flags.format, &ux.FormatterOptions{Writer: stdout, NoColor: noColor})
	if err != nil {
		return err
	}
	return formatter.Format(ux.NewTimelineReport(tl))
}
