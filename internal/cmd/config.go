package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/boardchart/internal/config"
	"github.com/felixgeelhaar/boardchart/internal/ux"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the chart configuration file",
	Long: `Manage the chart configuration stored in ./boardchart.yaml (or --config).

Configuration includes:
  • Title, site name and filename label
  • First day of the week for the grid
  • Layout dimensions and size limits
  • Stylesheet colors and font

Examples:
  # Show the effective configuration
  boardchart config view

  # Write a starter file with every default spelled out
  boardchart config init

  # Show which file is read
  boardchart config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the effective configuration",
	Long:  `Display the configuration after applying the file on top of the defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var (
	configViewFormat string
	configInitForce  bool
)

func init() {
	configViewCmd.Flags().StringVarP(&configViewFormat, "format", "f", "yaml", "output format: yaml, json")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultFilename
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if configViewFormat == "text" {
		return fmt.Errorf("invalid argument --format text: config view supports yaml or json")
	}
	formatter, err := ux.NewFormatter(configViewFormat, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	return formatter.Format(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	status := "not found, defaults in use"
	if _, err := os.Stat(path); err == nil {
		status = "exists"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", abs, status)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Write(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
