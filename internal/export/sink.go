package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/felixgeelhaar/boardchart/internal/errors"
	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Artifact is a finished chart ready to be saved or served.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte

	Rows        int
	GridStart   task.Date
	GridEnd     task.Date
	GeneratedAt time.Time
}

// Sink receives a finished artifact. It is the only side effect of an export.
type Sink interface {
	Save(ctx context.Context, a *Artifact) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, a *Artifact) error

// Save calls f.
func (f SinkFunc) Save(ctx context.Context, a *Artifact) error {
	return f(ctx, a)
}

// FileSink writes artifacts into Dir under their suggested filename. The file
// is written to a temporary name and renamed, so a failed save never leaves a
// partial chart behind.
type FileSink struct {
	Dir string
	// Path is set to the written file after a successful Save.
	Path string
}

// Save writes a into the sink directory.
func (s *FileSink) Save(ctx context.Context, a *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("create output directory %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, ".boardchart-*.svg.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create temporary chart file", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write chart", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "close chart", err)
	}

	final := filepath.Join(dir, a.Filename)
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("move chart to %s", final), err)
	}
	if err := os.Chmod(final, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("set permissions on %s", final), err)
	}
	s.Path = final
	return nil
}

// WriterSink streams the artifact bytes to W.
type WriterSink struct {
	W io.Writer
}

// Save writes the artifact data to the writer.
func (s WriterSink) Save(ctx context.Context, a *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.W.Write(a.Data); err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailed, "stream chart", err)
	}
	return nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds the suggested artifact name "{label}_{YYYY-MM-DD}.svg".
func Filename(label string, day task.Date) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(label), "-"), "-")
	if slug == "" {
		slug = "chart"
	}
	return fmt.Sprintf("%s_%s.svg", slug, day.String())
}
