// Command rank scores a whole catalog on the worker pool and prints the best
// opportunities by expected ROI.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/okian/tixroi/internal/adapters/repository"
	service "github.com/okian/tixroi/internal/app"
	"github.com/okian/tixroi/internal/config"
	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/internal/domain/scoring"
	"github.com/okian/tixroi/internal/synthetic"
	"github.com/okian/tixroi/pkg/logger"
	"github.com/okian/tixroi/pkg/metrics"
)

const defaultRunTimeout = 5 * time.Minute

const usage = `tixroi rank
===========

Scores every catalog event and prints the top opportunities.

Usage:
  go run ./cmd/rank [options]

Options:
  -top int
        Number of rows to print (default from TIXROI_TOP_N, 10)
  -json
        Print the ranking as JSON
  -synthetic int
        Replace the catalog with n generated events
  -seed uint
        Seed for -synthetic (default 1)
  -timeout duration
        Abort the run after this long (default 5m)
  -help
        Show this help message

Examples:
  go run ./cmd/rank -top 3
  TIXROI_STRATEGY=regression go run ./cmd/rank -synthetic 10000 -json
`

// errUnordered reports a board that does not descend by ROI.
var errUnordered = errors.New("ranking is not ordered by expected ROI")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	top       int
	json      bool
	synthetic int
	seed      uint64
	timeout   time.Duration
	help      bool
}

func parseFlags(args []string, defaultTop int, errOut io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { fmt.Fprint(errOut, usage) }
	fs.IntVar(&f.top, "top", defaultTop, "number of rows to print")
	fs.BoolVar(&f.json, "json", false, "print the ranking as JSON")
	fs.IntVar(&f.synthetic, "synthetic", 0, "replace the catalog with n generated events")
	fs.Uint64Var(&f.seed, "seed", 1, "seed for -synthetic")
	fs.DurationVar(&f.timeout, "timeout", defaultRunTimeout, "abort the run after this long")
	fs.BoolVar(&f.help, "help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(errOut, "failed to load config:", err)
		return 1
	}

	f, err := parseFlags(args, cfg.TopN, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if f.help {
		fmt.Fprint(out, usage)
		return 0
	}

	if err := logger.Init(logger.WithWriter(errOut), logger.WithJSON(cfg.LogFormat == config.LogFormatJSON)); err != nil {
		fmt.Fprintln(errOut, "failed to initialize logging:", err)
		return 1
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	defer func() {
		if cfg.MetricsFile == "" {
			return
		}
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	ranking, err := rank(ctx, cfg, f, log)
	if err != nil {
		log.Error(ctx, "ranking failed", logger.Error(err))
		return 1
	}
	if err := verifyOrder(ranking.Entries); err != nil {
		log.Error(ctx, "ranking verification failed", logger.Error(err))
		return 1
	}

	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ranking); err != nil {
			log.Error(ctx, "failed to encode ranking", logger.Error(err))
			return 1
		}
		return 0
	}
	if err := printTable(out, ranking); err != nil {
		log.Error(ctx, "failed to print ranking", logger.Error(err))
		return 1
	}
	return 0
}

func rank(ctx context.Context, cfg *config.Config, f flags, log logger.Logger) (service.Ranking, error) {
	strategy, err := scoring.ByName(cfg.Strategy)
	if err != nil {
		return service.Ranking{}, err
	}

	var events []model.Event
	if f.synthetic > 0 {
		events = synthetic.New(synthetic.WithSeed(f.seed)).Events(f.synthetic)
	} else if events, err = cfg.Events(); err != nil {
		return service.Ranking{}, err
	}

	svc := service.New(
		service.WithLogger(log.Named("advisor")),
		service.WithStrategy(strategy),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
	)
	if err := svc.Reload(ctx, events); err != nil {
		return service.Ranking{}, err
	}
	return svc.Rank(ctx, f.top)
}

// verifyOrder checks that rows descend by ROI with ties broken by event id.
func verifyOrder(entries []repository.Entry) error {
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Rank != prev.Rank+1 {
			return fmt.Errorf("%w: rank %d follows %d", errUnordered, cur.Rank, prev.Rank)
		}
		if cur.ExpectedROI > prev.ExpectedROI ||
			(cur.ExpectedROI == prev.ExpectedROI && cur.EventID < prev.EventID) {
			return fmt.Errorf("%w: event %d before event %d", errUnordered, prev.EventID, cur.EventID)
		}
	}
	return nil
}

func printTable(out io.Writer, r service.Ranking) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tEVENT\tROI\tRISK\tRECOMMENDATION\tCONFIDENCE")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%s\t%s\t%g\n",
			humanize.Ordinal(e.Rank), e.EventID, e.EventName, e.ExpectedROI,
			e.RiskLevel, e.Recommendation.Recommendation, e.ConfidenceScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%s scored, %s skipped (strategy %s, catalog v%d, run %s)\n",
		humanize.Comma(int64(r.Scored)), humanize.Comma(int64(r.Skipped)),
		r.Strategy, r.Version, r.RunID)
	return err
}
