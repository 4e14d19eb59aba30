package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/boardchart/internal/config"
	"github.com/felixgeelhaar/boardchart/internal/export"
	"github.com/felixgeelhaar/boardchart/internal/health"
	"github.com/felixgeelhaar/boardchart/internal/log"
	"github.com/felixgeelhaar/boardchart/internal/metrics"
	"github.com/felixgeelhaar/boardchart/internal/server"
	"github.com/felixgeelhaar/boardchart/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chart exports over HTTP",
	Long: `Start an HTTP server that renders posted task lists.

Endpoints:
  POST /export?expand=all|none|id,id  - JSON task list in, SVG attachment out
  /health/live    - Liveness probe (process alive and responsive)
  /health/ready   - Readiness probe (render self-check passes)
  /health/startup - Startup probe (finished initialization)
  /healthz        - Backward-compatible readiness endpoint
  /metrics        - Prometheus metrics

The server drains connections on SIGTERM or SIGINT.

Example:
  boardchart serve --port 9090
  curl -X POST --data @board.json 'localhost:9090/export?expand=all' -o chart.svg`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	servePort            string
	serveAddress         string
	serveShutdownTimeout time.Duration
	serveReadTimeout     time.Duration
	serveWriteTimeout    time.Duration
	serveIdleTimeout     time.Duration
	serveMaxBody         int64
)

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	serveCmd.Flags().StringVar(&serveAddress, "address", "0.0.0.0", "Address to bind to")
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 30*time.Second, "Maximum time to wait for connections to drain during shutdown")
	serveCmd.Flags().DurationVar(&serveReadTimeout, "read-timeout", 10*time.Second, "Maximum duration for reading the entire request")
	serveCmd.Flags().DurationVar(&serveWriteTimeout, "write-timeout", 30*time.Second, "Maximum duration before timing out writes of the response")
	serveCmd.Flags().DurationVar(&serveIdleTimeout, "idle-timeout", 60*time.Second, "Maximum amount of time to wait for the next request")
	serveCmd.Flags().Int64Var(&serveMaxBody, "max-body-bytes", 8<<20, "Largest accepted task list upload")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.DefaultLogger()
	info := version.GetInfo()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	reg, m := metrics.NewRegistry()
	exporterOpts := []export.Option{
		export.WithLayout(cfg.Layout),
		export.WithOptions(cfg.ExportOptions()),
		export.WithLogger(logger),
		export.WithMetrics(m),
	}

	pm := health.NewProbeManager(info.Version)
	pm.AddChecker(health.NewRenderChecker(export.WithLayout(cfg.Layout)))

	listenAddr := fmt.Sprintf("%s:%s", serveAddress, servePort)
	srv := server.NewServer(server.Deps{
		Probes:   pm,
		Exporter: export.New(exporterOpts...),
		Metrics:  m,
		Gatherer: reg,
		Logger:   logger,
	}, server.Config{
		Address:         listenAddr,
		ShutdownTimeout: serveShutdownTimeout,
		ReadTimeout:     serveReadTimeout,
		WriteTimeout:    serveWriteTimeout,
		IdleTimeout:     serveIdleTimeout,
		MaxBodyBytes:    serveMaxBody,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", info.String())
	fmt.Fprintf(out, "Export:  POST http://%s/export\n", listenAddr)
	fmt.Fprintf(out, "Health:  http://%s/health/ready\n", listenAddr)
	fmt.Fprintf(out, "Metrics: http://%s/metrics\n\n", listenAddr)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", ctx.Err().Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
