package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Export errors (EXPORT-001 to EXPORT-099)
	ErrCodeEmptyInput       ErrorCode = "EXPORT-001"
	ErrCodeMalformedTask    ErrorCode = "EXPORT-002"
	ErrCodeGeometryOverflow ErrorCode = "EXPORT-003"
	ErrCodeSinkFailed       ErrorCode = "EXPORT-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
)

// ChartError represents an error with code, suggestions, and the offending task if any
type ChartError struct {
	Code        ErrorCode
	Message     string
	TaskID      string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ChartError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ChartError) Unwrap() error {
	return e.Cause
}

// Is matches another ChartError by code, so sentinel values such as
// ErrEmptyInput work with errors.Is.
func (e *ChartError) Is(target error) bool {
	t, ok := target.(*ChartError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is. Compare by code only.
var (
	ErrEmptyInput       = &ChartError{Code: ErrCodeEmptyInput}
	ErrMalformedTask    = &ChartError{Code: ErrCodeMalformedTask}
	ErrGeometryOverflow = &ChartError{Code: ErrCodeGeometryOverflow}
)

// New creates a new ChartError
func New(code ErrorCode, message string) *ChartError {
	return &ChartError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ChartError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ChartError {
	return &ChartError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ChartError) WithSuggestion(suggestion string) *ChartError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ChartError) WithSuggestions(suggestions ...string) *ChartError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithTask records the offending task id
func (e *ChartError) WithTask(taskID string) *ChartError {
	e.TaskID = taskID
	return e
}

// CodeOf returns the code of the first ChartError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ce *ChartError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// HasCode reports whether err's chain contains a ChartError with code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewEmptyInputError creates the error returned when there is nothing to chart
func NewEmptyInputError(detail string) *ChartError {
	msg := "no tasks to export"
	if detail != "" {
		msg = fmt.Sprintf("no tasks to export: %s", detail)
	}
	return New(ErrCodeEmptyInput, msg).
		WithSuggestion("Add at least one task to the board before exporting").
		WithSuggestion("Check that the input is a JSON or YAML list of tasks")
}

// NewMalformedTaskError creates the error for a task record that cannot be charted
func NewMalformedTaskError(taskID string, reason string) *ChartError {
	subject := "task"
	if taskID != "" {
		subject = fmt.Sprintf("task %q", taskID)
	}
	return New(ErrCodeMalformedTask, fmt.Sprintf("malformed %s: %s", subject, reason)).
		WithTask(taskID).
		WithSuggestion("Fix the task record in the source board and export again")
}

// NewGeometryOverflowError creates the error for charts whose canvas would exceed sane bounds
func NewGeometryOverflowError(detail string) *ChartError {
	return New(ErrCodeGeometryOverflow, fmt.Sprintf("chart too large: %s", detail)).
		WithSuggestion("Narrow the exported tasks to a shorter date range").
		WithSuggestion("Check for tasks with start or due dates far in the past or future")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *ChartError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *ChartError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *ChartError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Run 'boardchart config view' to inspect the effective configuration")
}
