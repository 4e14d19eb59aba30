package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/boardchart/internal/cmd"
	"github.com/felixgeelhaar/boardchart/internal/exitcode"
	"github.com/felixgeelhaar/boardchart/internal/ux"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			exitcode.Exit(exitcode.Interrupted)
		}

		fmt.Fprintln(os.Stderr, ux.RenderError(err, ux.NewStyles(cmd.NoColor())))
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}
