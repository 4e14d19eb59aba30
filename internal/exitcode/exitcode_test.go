package exitcode

import (
	"errors"
	"fmt"
	"testing"

	cerrors "github.com/felixgeelhaar/boardchart/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"empty input", cerrors.NewEmptyInputError(""), EmptyInput},
		{"malformed", cerrors.NewMalformedTaskError("t1", "missing id"), MalformedInput},
		{"overflow", cerrors.NewGeometryOverflowError("span of 5000 days"), GeometryOverflow},
		{"config", cerrors.NewConfigInvalidError("bad week start"), ConfigError},
		{"file not found", cerrors.NewFileNotFoundError("tasks.json"), IOError},
		{"sink failed", cerrors.New(cerrors.ErrCodeSinkFailed, "disk full"), IOError},
		{"wrapped code", fmt.Errorf("export: %w", cerrors.NewEmptyInputError("")), EmptyInput},
		{"unknown flag", errors.New("unknown flag: --nope"), UsageError},
		{"required flag", errors.New(`required flag(s) "in" not set`), UsageError},
		{"arg count", errors.New("accepts 0 arg(s), received 1"), UsageError},
		{"generic", errors.New("boom"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	codes := []int{Success, GeneralError, UsageError, EmptyInput, MalformedInput, GeometryOverflow, ConfigError, IOError, Interrupted}
	seen := make(map[string]bool)
	for _, c := range codes {
		d := GetExitCodeDescription(c)
		if d == "" || d == "Unknown error" {
			t.Errorf("code %d has no description", c)
		}
		if seen[d] {
			t.Errorf("description %q reused", d)
		}
		seen[d] = true
	}
	if got := GetExitCodeDescription(99); got != "Unknown error" {
		t.Errorf("GetExitCodeDescription(99) = %q", got)
	}
}
