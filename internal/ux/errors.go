package ux

import (
	stderrors "errors"
	"fmt"
	"strings"

	cerrors "github.com/felixgeelhaar/boardchart/internal/errors"
)

// RenderError formats err for the terminal, listing the code, offending
// task and suggestions when err carries a ChartError.
func RenderError(err error, s Styles) string {
	if err == nil {
		return ""
	}
	var ce *cerrors.ChartError
	if !stderrors.As(err, &ce) {
		return s.Error.Render("Error: ") + err.Error()
	}

	var b strings.Builder
	b.WriteString(s.Error.Render(fmt.Sprintf("Error [%s]: ", ce.Code)))
	b.WriteString(ce.Message)
	if ce.TaskID != "" {
		b.WriteString("\n  ")
		b.WriteString(s.Muted.Render("task: "))
		b.WriteString(ce.TaskID)
	}
	if ce.Cause != nil {
		b.WriteString("\n  ")
		b.WriteString(s.Muted.Render("cause: "))
		b.WriteString(ce.Cause.Error())
	}
	for _, sug := range ce.Suggestions {
		b.WriteString("\n  ")
		b.WriteString(s.Warning.Render("→ "))
		b.WriteString(sug)
	}
	return b.String()
}
