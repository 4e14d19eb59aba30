package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/boardchart/internal/config"
	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/hierarchy"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// chartFlags are shared by the commands that run the pipeline.
type chartFlags struct {
	in        string
	expandAll bool
	expand    []string
	now       string
	format    string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.in, "in", "i", "", "task list file (.json, .yaml or .yml)")
	cmd.Flags().BoolVar(&f.expandAll, "expand-all", false, "show the subtasks of every task")
	cmd.Flags().StringSliceVar(&f.expand, "expand", nil, "show the subtasks of these task ids (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.now, "now", "", "treat this date or RFC 3339 time as now (default: current time)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "report format: text, json, yaml")
	_ = cmd.MarkFlagRequired("in")
}

func (f *chartFlags) selection() hierarchy.Selection {
	if f.expandAll {
		return hierarchy.ExpandAll()
	}
	return hierarchy.ExpandIDs(f.expand...)
}

// clock returns the pipeline clock, pinned when --now is set. A timestamp
// keeps its own offset so the calendar day is the one it names.
func (f *chartFlags) clock() (func() time.Time, error) {
	if f.now == "" {
		return time.Now, nil
	}
	if t, err := time.Parse(time.RFC3339, f.now); err == nil {
		return func() time.Time { return t }, nil
	}
	d, err := task.ParseDate(f.now)
	if err != nil {
		return nil, fmt.Errorf("invalid argument --now %q: %w", f.now, err)
	}
	t := d.Time()
	return func() time.Time { return t }, nil
}

// chartOverrides are flag values that win over the config file.
type chartOverrides struct {
	title    string
	siteName string
	label    string
}

func (o chartOverrides) apply(opts export.Options) export.Options {
	if o.title != "" {
		opts.Title = o.title
	}
	if o.siteName != "" {
		opts.SiteName = o.siteName
	}
	if o.label != "" {
		opts.Label = o.label
	}
	return opts
}

// newExporter loads the chart config and builds an exporter for f.
func newExporter(f *chartFlags, o chartOverrides) (*export.Exporter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	clock, err := f.clock()
	if err != nil {
		return nil, err
	}
	logger := log.DefaultLogger()
	logger.Debug("loaded chart config", "path", configPath, "week_start", cfg.WeekStart)

	return export.New(
		export.WithLayout(cfg.Layout),
		export.WithOptions(o.apply(cfg.ExportOptions())),
		export.WithClock(clock),
		export.WithLogger(logger),
	), nil
}
