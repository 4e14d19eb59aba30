package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeEmptyInput, "test error message")

	if err.Code != ErrCodeEmptyInput {
		t.Errorf("expected code %s, got %s", ErrCodeEmptyInput, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *ChartError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeGeometryOverflow, "too wide"),
			wantCode: "EXPORT-003",
			wantMsg:  "too wide",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "permission denied",
		},
		{
			name:     "suggestions are listed",
			err:      NewEmptyInputError(""),
			wantCode: "EXPORT-001",
			wantMsg:  "Suggestions:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("export: %w", NewMalformedTaskError("t-1", "missing id"))

	if !errors.Is(err, ErrMalformedTask) {
		t.Error("expected errors.Is to match ErrMalformedTask")
	}
	if errors.Is(err, ErrEmptyInput) {
		t.Error("did not expect errors.Is to match ErrEmptyInput")
	}

	var ce *ChartError
	if !errors.As(err, &ce) {
		t.Fatal("expected errors.As to find ChartError")
	}
	if ce.TaskID != "t-1" {
		t.Errorf("expected task id t-1, got %q", ce.TaskID)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}
	if got := CodeOf(NewGeometryOverflowError("span")); got != ErrCodeGeometryOverflow {
		t.Errorf("expected %s, got %s", ErrCodeGeometryOverflow, got)
	}
	if !HasCode(fmt.Errorf("wrap: %w", NewEmptyInputError("x")), ErrCodeEmptyInput) {
		t.Error("expected HasCode to see through wrapping")
	}
}

func TestMalformedTaskErrorWithoutID(t *testing.T) {
	err := NewMalformedTaskError("", "entry 3 has no id")
	if !strings.Contains(err.Error(), "malformed task: entry 3 has no id") {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if err.TaskID != "" {
		t.Errorf("expected empty task id, got %q", err.TaskID)
	}
}

func TestWithSuggestions(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad").WithSuggestions("one", "two")
	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}
	if !strings.Contains(err.Error(), "• two") {
		t.Errorf("expected rendered suggestion, got: %s", err.Error())
	}
}
