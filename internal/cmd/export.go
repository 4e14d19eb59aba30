package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/task"
	"github.com/felixgeelhaar/boardchart/internal/ux"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a task list as an SVG Gantt chart",
	Long: `Render a task list as an SVG Gantt chart.

The chart is written to the output directory as {label}_{date}.svg, or to
stdout with --out -. Subtasks are hidden unless --expand-all or --expand
names their parent.

Examples:
  # Write gantt-chart_<today>.svg into ./charts
  boardchart export --in board.json --out charts

  # Expand two epics and stream the SVG
  boardchart export --in board.json --expand epic-1,epic-4 --out - > chart.svg

  # Reproduce a chart exactly as it looked on a given day
  boardchart export --in board.yaml --expand-all --now 2024-01-15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.OutOrStdout(), &exportFlags)
	},
}

type exportOptions struct {
	chartFlags
	chartOverrides
	out string
}

var exportFlags exportOptions

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", ".", "output directory, or - for stdout")
	exportCmd.Flags().StringVar(&exportFlags.title, "title", "", "chart title (overrides config)")
	exportCmd.Flags().StringVar(&exportFlags.siteName, "site-name", "", "site name shown under the title (overrides config)")
	exportCmd.Flags().StringVar(&exportFlags.label, "label", "", "filename label (overrides config)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, stdout io.Writer, opts *exportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	tasks, err := task.LoadFile(opts.in)
	if err != nil {
		return err
	}
	log.DefaultLogger().Debug("loaded tasks", "path", opts.in, "count", len(tasks))

	exporter, err := newExporter(&opts.chartFlags, opts.chartOverrides)
	if err != nil {
		return err
	}

	if opts.out == "-" {
		_, err := exporter.Export(ctx, tasks, opts.selection(), export.WriterSink{W: stdout})
		return err
	}

	formatter, err := ux.NewFormatter(opts.format, &ux.FormatterOptions{Writer: stdout, NoColor: noColor})
	if err != nil {
		return err
	}

	sink := &export.FileSink{Dir: opts.out}
	a, err := exporter.Export(ctx, tasks, opts.selection(), sink)
	if err != nil {
		return err
	}
	return formatter.Format(ux.NewExportSummary(a, sink.Path))
}
