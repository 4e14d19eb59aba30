// Package config loads the chart configuration file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/boardchart/internal/chart"
	"github.com/felixgeelhaar/boardchart/internal/errors"
	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/layout"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = "boardchart.yaml"

// Config is the on-disk chart configuration.
type Config struct {
	SiteName   string        `yaml:"site_name" json:"site_name"`
	ChartLabel string        `yaml:"chart_label" json:"chart_label"`
	Title      string        `yaml:"title" json:"title"`
	WeekStart  string        `yaml:"week_start" json:"week_start"`
	Layout     layout.Config `yaml:"layout" json:"layout"`
	Theme      ThemeConfig   `yaml:"theme" json:"theme"`
}

// ThemeConfig overrides stylesheet values. Empty fields keep the defaults.
type ThemeConfig struct {
	FontFamily string `yaml:"font_family,omitempty" json:"font_family,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Text       string `yaml:"text,omitempty" json:"text,omitempty"`
	Muted      string `yaml:"muted,omitempty" json:"muted,omitempty"`
	Grid       string `yaml:"grid,omitempty" json:"grid,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SiteName:   "",
		ChartLabel: export.DefaultLabel,
		Title:      export.DefaultTitle,
		WeekStart:  "sunday",
		Layout:     layout.DefaultConfig(),
	}
}

// Load reads the configuration at path. An empty path falls back to
// DefaultFilename in the working directory, and a missing default file
// yields Default(). A missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.NewFileNotFoundError(path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read config %s", path), err)
	}
	return Parse(data, path)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.NewFileUnmarshalError(source, "YAML", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the week start and layout values.
func (c *Config) Validate() error {
	wd, err := ParseWeekday(c.WeekStart)
	if err != nil {
		return errors.NewConfigInvalidError(err.Error())
	}
	c.Layout.WeekStart = wd
	if err := c.Layout.Validate(); err != nil {
		return errors.NewConfigInvalidError(err.Error())
	}
	if err := c.Theme.Validate(); err != nil {
		return errors.NewConfigInvalidError(err.Error())
	}
	return nil
}

var (
	// hex (#rgb, #rgba, #rrggbb, #rrggbbaa), named colours, and rgb()/hsl() forms.
	cssColor = regexp.MustCompile(`^(#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)
	// family names, optionally quoted, separated by commas.
	fontFamily = regexp.MustCompile(`^[a-zA-Z0-9 ,'"_-]+$`)
)

// Validate rejects theme values that are not plain CSS colours or font lists.
func (t ThemeConfig) Validate() error {
	colors := []struct{ key, value string }{
		{"background", t.Background},
		{"text", t.Text},
		{"muted", t.Muted},
		{"grid", t.Grid},
	}
	for _, c := range colors {
		if c.value != "" && !cssColor.MatchString(strings.TrimSpace(c.value)) {
			return fmt.Errorf("theme.%s %q is not a CSS colour", c.key, c.value)
		}
	}
	if t.FontFamily != "" && !fontFamily.MatchString(t.FontFamily) {
		return fmt.Errorf("theme.font_family %q may only contain font names, quotes and commas", t.FontFamily)
	}
	return nil
}

// ExportOptions converts the file settings into exporter options.
func (c Config) ExportOptions() export.Options {
	theme := chart.DefaultTheme()
	if c.Theme.FontFamily != "" {
		theme.FontFamily = c.Theme.FontFamily
	}
	if c.Theme.Background != "" {
		theme.Background = c.Theme.Background
	}
	if c.Theme.Text != "" {
		theme.Text = c.Theme.Text
	}
	if c.Theme.Muted != "" {
		theme.Muted = c.Theme.Muted
	}
	if c.Theme.Grid != "" {
		theme.Grid = c.Theme.Grid
	}
	return export.Options{
		Title:    c.Title,
		SiteName: c.SiteName,
		Label:    c.ChartLabel,
		Theme:    theme,
	}
}

// ParseWeekday accepts English weekday names and their three-letter forms.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown week_start %q", s)
}

// Write saves c as YAML at path, creating parent directories.
func Write(c Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "marshal config", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("create %s", dir), err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("write config %s", path), err)
	}
	return nil
}
