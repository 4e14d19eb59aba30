package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/boardchart/internal/errors"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Format: format, Output: &buf, ServiceName: "boardchart"}), &buf
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		logFunc  func(*Logger)
		expected bool
	}{
		{"debug at info", LevelInfo, func(l *Logger) { l.Debug("msg") }, false},
		{"info at info", LevelInfo, func(l *Logger) { l.Info("msg") }, true},
		{"warn at error", LevelError, func(l *Logger) { l.Warn("msg") }, false},
		{"error at warn", LevelWarn, func(l *Logger) { l.Error("msg") }, true},
		{"debug at debug", LevelDebug, func(l *Logger) { l.Debug("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.level, FormatText)
			tt.logFunc(logger)
			if got := buf.Len() > 0; got != tt.expected {
				t.Errorf("output written = %v, want %v (output: %q)", got, tt.expected, buf.String())
			}
		})
	}
}

func TestJSONFormatOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.Info("artifact ready", "rows", 6)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "artifact ready" {
		t.Errorf("msg = %v, want %q", entry["msg"], "artifact ready")
	}
	if entry["service"] != "boardchart" {
		t.Errorf("service = %v, want boardchart", entry["service"])
	}
	if entry["rows"] != float64(6) {
		t.Errorf("rows = %v, want 6", entry["rows"])
	}
}

func TestTextFormatOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.With("label", "gantt").Info("exported")

	out := buf.String()
	for _, want := range []string{"msg=exported", "label=gantt", "service=boardchart"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "nil error",
			err:  nil,
			want: nil,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: []string{"error=boom"},
		},
		{
			name: "malformed task",
			err:  errors.NewMalformedTaskError("t-9", "missing id"),
			want: []string{"error_code=EXPORT-002", "task_id=t-9"},
		},
		{
			name: "wrapped chart error",
			err:  fmt.Errorf("export: %w", errors.NewEmptyInputError("")),
			want: []string{"error_code=EXPORT-001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelInfo, FormatText)
			logger.WithError(tt.err).Info("export finished")
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestLogError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.LogError("export failed", errors.Wrap(errors.ErrCodeFileWriteFailed, "write chart", fmt.Errorf("disk full")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["error_code"] != "IO-003" {
		t.Errorf("error_code = %v, want IO-003", entry["error_code"])
	}
	if entry["cause"] != "disk full" {
		t.Errorf("cause = %v, want %q", entry["cause"], "disk full")
	}

	buf.Reset()
	logger.LogError("ignored", nil)
	if buf.Len() != 0 {
		t.Errorf("nil error should not log, got %q", buf.String())
	}
}

func TestEnabled(t *testing.T) {
	logger, _ := newBufferLogger(LevelWarn, FormatText)
	ctx := context.Background()

	if logger.Enabled(ctx, LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing to see")
	if l.Enabled(context.Background(), LevelInfo) {
		t.Error("discard logger should not enable info")
	}
}

func TestNewDefaultsOutput(t *testing.T) {
	l := New(Config{Level: LevelInfo})
	if l.Config().Output == nil {
		t.Error("expected output to default to stderr")
	}
}
