package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/boardchart/internal/chart"
	"github.com/felixgeelhaar/boardchart/internal/errors"
	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, export.DefaultLabel, cfg.ChartLabel)
	assert.Equal(t, export.DefaultTitle, cfg.Title)
	assert.Equal(t, "sunday", cfg.WeekStart)
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err, "a missing default file means defaults")
	assert.Equal(t, Default(), cfg)

	_, err = Load("missing.yaml")
	assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestLoadDefaultFilename(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFilename), []byte("title: Sprint board\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Sprint board", cfg.Title)
	assert.Equal(t, export.DefaultLabel, cfg.ChartLabel, "unset fields keep defaults")
}

func TestParse(t *testing.T) {
	data := []byte(`
site_name: Acme
chart_label: roadmap
week_start: Mon
layout:
  canvas_width_px: 1600
  row_spacing_px: 40
theme:
  background: "#000000"
`)
	cfg, err := Parse(data, "inline")
	require.NoError(t, err)

	assert.Equal(t, "Acme", cfg.SiteName)
	assert.Equal(t, "roadmap", cfg.ChartLabel)
	assert.Equal(t, time.Monday, cfg.Layout.WeekStart)
	assert.Equal(t, 1600.0, cfg.Layout.CanvasWidthPx)
	assert.Equal(t, 40.0, cfg.Layout.RowSpacingPx)
	assert.Equal(t, 24.0, cfg.Layout.RowHeightPx, "unset layout fields keep defaults")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil, "empty")
	require.NoError(t, err)
	assert.Equal(t, Default().Title, cfg.Title)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"unknown field", "colour: red\n", errors.ErrCodeFileUnmarshal},
		{"not yaml", "title: [unclosed\n", errors.ErrCodeFileUnmarshal},
		{"bad week start", "week_start: someday\n", errors.ErrCodeConfigInvalid},
		{"bad layout", "layout:\n  row_spacing_px: -1\n", errors.ErrCodeConfigInvalid},
		{"markup in colour", "theme:\n  text: 'red; } </style><x>'\n", errors.ErrCodeConfigInvalid},
		{"quote in colour", "theme:\n  grid: '#fff\" onload=\"x'\n", errors.ErrCodeConfigInvalid},
		{"markup in font", "theme:\n  font_family: 'Inter; } <x>'\n", errors.ErrCodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "inline")
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestThemeValidate(t *testing.T) {
	valid := []ThemeConfig{
		{},
		{Background: "#000", Text: "#11182780", Muted: "slategray", Grid: "rgb(229, 231, 235)"},
		{Grid: "hsla(220, 13%, 91%, 0.5)", FontFamily: `"Inter", 'Segoe UI', sans-serif`},
	}
	for _, th := range valid {
		assert.NoError(t, th.Validate(), "%+v", th)
	}

	invalid := []ThemeConfig{
		{Background: "#12"},
		{Text: "red;fill:blue"},
		{Muted: "url(#x)"},
		{FontFamily: "Inter</style>"},
	}
	for _, th := range invalid {
		assert.Error(t, th.Validate(), "%+v", th)
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"", time.Sunday, false},
		{"sunday", time.Sunday, false},
		{"Monday", time.Monday, false},
		{" sat ", time.Saturday, false},
		{"wed", time.Wednesday, false},
		{"weekday", time.Sunday, true},
		{"mo", time.Sunday, true},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	cfg.SiteName = "Acme"
	cfg.Theme = ThemeConfig{Background: "#101010", Grid: "#202020"}

	opts := cfg.ExportOptions()
	assert.Equal(t, "Acme", opts.SiteName)
	assert.Equal(t, export.DefaultTitle, opts.Title)
	assert.Equal(t, export.DefaultLabel, opts.Label)

	def := chart.DefaultTheme()
	assert.Equal(t, "#101010", opts.Theme.Background)
	assert.Equal(t, "#202020", opts.Theme.Grid)
	assert.Equal(t, def.Text, opts.Theme.Text)
	assert.Equal(t, def.FontFamily, opts.Theme.FontFamily)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultFilename)

	cfg := Default()
	cfg.Title = "Release plan"
	cfg.WeekStart = "monday"
	cfg.Layout.CanvasWidthPx = 1400
	require.NoError(t, Write(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Release plan", got.Title)
	assert.Equal(t, time.Monday, got.Layout.WeekStart)
	assert.Equal(t, 1400.0, got.Layout.CanvasWidthPx)
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
