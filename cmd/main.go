package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	service "github.com/okian/tixroi/internal/app"
	"github.com/okian/tixroi/internal/cli"
	"github.com/okian/tixroi/internal/config"
	"github.com/okian/tixroi/internal/domain/scoring"
	"github.com/okian/tixroi/pkg/logger"
	"github.com/okian/tixroi/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run wires the advisor and serves the interactive session until the user
// exits. Logs go to errOut so they never interleave with the prompt.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer) int {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		fmt.Fprintln(errOut, "failed to load config:", err)
		return 1
	}

	if err := logger.Init(logger.WithWriter(errOut), logger.WithJSON(cfg.LogFormat == config.LogFormatJSON)); err != nil {
		fmt.Fprintln(errOut, "failed to initialize logging:", err)
		return 1
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintln(errOut, "failed to flush logs:", err)
		}
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start advisor", logger.Error(err))
		return 1
	}
	defer writeMetrics(ctx, cfg.MetricsFile, log)

	session := cli.NewSession(svc, cli.WithLogger(log.Named("cli")))
	if err := session.Run(ctx, in, out); err != nil {
		log.Error(ctx, "session ended with error", logger.Error(err))
		return 1
	}
	return 0
}

// newService builds the advisor for cfg and loads its catalog.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, error) {
	strategy, err := scoring.ByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	svc := service.New(
		service.WithLogger(log.Named("advisor")),
		service.WithStrategy(strategy),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
	)

	events, err := cfg.Events()
	if err != nil {
		return nil, err
	}
	if err := svc.Reload(ctx, events); err != nil {
		return nil, err
	}
	return svc, nil
}

func writeMetrics(ctx context.Context, path string, log logger.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Warn(ctx, "failed to write metrics", logger.String("path", path), logger.Error(err))
		return
	}
	log.Debug(ctx, "metrics written", logger.String("path", path))
}
