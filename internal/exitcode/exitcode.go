package exitcode

import (
	"os"
	"strings"

	cerrors "github.com/felixgeelhaar/boardchart/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// EmptyInput indicates the task list had nothing to chart
	EmptyInput = 3

	// MalformedInput indicates a task that could not be identified or placed
	MalformedInput = 4

	// GeometryOverflow indicates the chart would exceed its size limits
	GeometryOverflow = 5

	// ConfigError indicates an unreadable or invalid configuration file
	ConfigError = 6

	// IOError indicates a file could not be read or the artifact could not be written
	IOError = 7

	// Interrupted indicates the run was cancelled by SIGINT or SIGTERM
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps coded errors to exit statuses and falls back to
// message inspection for cobra's usage errors.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch code := cerrors.CodeOf(err); {
	case code == cerrors.ErrCodeEmptyInput:
		return EmptyInput
	case code == cerrors.ErrCodeMalformedTask:
		return MalformedInput
	case code == cerrors.ErrCodeGeometryOverflow:
		return GeometryOverflow
	case code == cerrors.ErrCodeConfigInvalid:
		return ConfigError
	case code == cerrors.ErrCodeSinkFailed, strings.HasPrefix(string(code), "IO-"):
		return IOError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg(s)") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case EmptyInput:
		return "No tasks to export"
	case MalformedInput:
		return "Malformed task input"
	case GeometryOverflow:
		return "Chart exceeds size limits"
	case ConfigError:
		return "Invalid configuration"
	case IOError:
		return "File or output error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
