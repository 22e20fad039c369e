// Package service owns the active catalog and estimator and answers
// recommendation and ranking queries against them.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/tixroi/internal/adapters/mq/queue"
	workerpool "github.com/okian/tixroi/internal/adapters/mq/worker"
	repository "github.com/okian/tixroi/internal/adapters/repository"
	"github.com/okian/tixroi/internal/domain/analytics"
	"github.com/okian/tixroi/internal/domain/catalog"
	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/internal/domain/scoring"
	"github.com/okian/tixroi/pkg/logger"
	"github.com/okian/tixroi/pkg/metrics"
)

const enqueueRetryDelay = time.Millisecond

// snapshot pairs a catalog with the estimator prepared from it. It is never
// mutated after publication.
type snapshot struct {
	catalog   *catalog.Catalog
	estimator scoring.Estimator
	version   uint64
}

// Service answers queries against the most recently loaded catalog.
type Service struct {
	current  atomic.Pointer[snapshot]
	reloadMu sync.Mutex

	strategy    scoring.Strategy
	workerCount int
	queueSize   int

	logger logger.Logger
}

// Ranking is the outcome of one ranking run.
type Ranking struct {
	RunID    string             `json:"run_id"`
	Version  uint64             `json:"catalog_version"`
	Strategy string             `json:"strategy"`
	Scored   int                `json:"scored"`
	Skipped  int                `json:"skipped"`
	Entries  []repository.Entry `json:"entries"`
}

// New constructs a Service over an empty catalog. Call Reload to load events.
func New(opts ...Option) *Service {
	s := &Service{
		strategy:    scoring.NewCohortStrategy(),
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("advisor")
	}

	// an empty catalog has nothing to score, so no estimator is needed yet
	s.current.Store(&snapshot{catalog: catalog.Empty()})
	return s
}

// Strategy returns the name of the configured strategy.
func (s *Service) Strategy() string { return s.strategy.Name() }

// Version returns the number of successful reloads so far.
func (s *Service) Version() uint64 { return s.current.Load().version }

// Len returns the size of the active catalog.
func (s *Service) Len() int { return s.current.Load().catalog.Len() }

// Reload replaces the catalog and retrains the strategy. The new catalog and
// estimator become visible together; on error the previous ones stay active.
func (s *Service) Reload(ctx context.Context, events []model.Event) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	c, err := catalog.New(events)
	if err != nil {
		return s.rejectReload(ctx, err)
	}
	est, err := s.strategy.Prepare(ctx, c.Events())
	if err != nil {
		return s.rejectReload(ctx, err)
	}

	next := &snapshot{
		catalog:   c,
		estimator: est,
		version:   s.current.Load().version + 1,
	}
	s.current.Store(next)

	fields := []logger.Field{
		logger.Int("events", c.Len()),
		logger.Strategy(est.Name()),
		logger.Any("version", next.version),
	}
	if fitted, ok := est.(interface{ Model() scoring.Model }); ok {
		m := fitted.Model()
		metrics.UpdateModelTrained(m.Trained())
		fields = append(fields, logger.String("model", m.State().String()))
		if p, trained := m.Params(); trained {
			fields = append(fields, logger.Int("samples", p.Samples))
		}
	}
	metrics.UpdateCatalogEvents(c.Len())
	metrics.RecordCatalogReload("ok")
	s.logger.Info(ctx, "catalog reloaded", fields...)
	return nil
}

func (s *Service) rejectReload(ctx context.Context, err error) error {
	metrics.RecordCatalogReload("rejected")
	metrics.RecordErrorByComponent("service", "reload")
	s.logger.Warn(ctx, "catalog reload rejected", logger.Error(err))
	return fmt.Errorf("reload: %w", err)
}

// Recommend scores one event of the active catalog.
func (s *Service) Recommend(ctx context.Context, eventID int) (model.Recommendation, error) {
	start := time.Now()
	snap := s.current.Load()

	rec, err := s.recommend(ctx, snap, eventID)
	metrics.RecordRecommendationLatency(time.Since(start))
	if err != nil {
		metrics.RecordRecommendationError(errorKind(err))
		s.logger.Debug(ctx, "recommendation failed",
			logger.EventID(eventID),
			logger.Error(err),
		)
		return model.Recommendation{}, err
	}

	metrics.RecordRecommendation(string(rec.Recommendation), rec.Strategy)
	s.logger.Debug(ctx, "recommendation produced",
		logger.EventID(eventID),
		logger.String("recommendation", string(rec.Recommendation)),
		logger.Float64("roi", rec.ExpectedROI),
		logger.String("risk", string(rec.RiskLevel)),
	)
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, snap *snapshot, eventID int) (model.Recommendation, error) {
	target, ok := snap.catalog.Get(eventID)
	if !ok {
		return model.Recommendation{}, fmt.Errorf("event with ID %d %w", eventID, ErrNotFound)
	}
	if err := target.Validate(); err != nil {
		return model.Recommendation{}, err
	}

	in := scoring.Input{
		Target: target,
		Cohort: snap.catalog.Cohort(target),
		Trend:  analytics.Analyze(snap.catalog.ByCategory(target.Category)),
	}
	est := snap.estimator

	roi, err := est.EstimateROI(ctx, in)
	if err != nil {
		return model.Recommendation{}, fmt.Errorf("event %d: %w", eventID, err)
	}
	risk := est.ClassifyRisk(in, roi)

	rec := model.Recommendation{
		EventID:         target.ID,
		EventName:       target.Name,
		Recommendation:  scoring.Recommend(roi, risk),
		ExpectedROI:     scoring.Round2(roi),
		RiskLevel:       risk,
		ConfidenceScore: est.ScoreConfidence(in, roi),
		Strategy:        est.Name(),
	}
	if hp, ok := est.(scoring.HoldingPeriodRecommender); ok {
		rec.SuggestedHoldingPeriod = model.HoldingPeriodText(hp.RecommendHoldingPeriod(in))
	}
	return rec, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrDegenerateEvent):
		return "degenerate"
	case errors.Is(err, scoring.ErrUntrainedModel):
		return "untrained"
	default:
		return "other"
	}
}

// snapshotScorer pins a ranking run to one snapshot.
type snapshotScorer struct {
	svc  *Service
	snap *snapshot
}

func (a snapshotScorer) Recommend(ctx context.Context, eventID int) (model.Recommendation, error) {
	return a.svc.recommend(ctx, a.snap, eventID)
}

// Rank scores every event of the active catalog on the worker pool and
// returns the best limit of them by expected ROI. Events that cannot be
// scored are skipped and counted.
func (s *Service) Rank(ctx context.Context, limit int) (Ranking, error) {
	if limit < 1 {
		return Ranking{}, fmt.Errorf("rank: %w: %d", repository.ErrInvalidLimit, limit)
	}

	start := time.Now()
	snap := s.current.Load()
	runID := uuid.NewString()
	log := s.logger.Named("rank")

	ranking := Ranking{RunID: runID, Version: snap.version, Strategy: s.strategy.Name()}
	events := snap.catalog.Events()
	if len(events) == 0 {
		metrics.RecordRankingRun(time.Since(start), 0)
		return ranking, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	board := repository.NewTreapStore()
	q := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	pool := workerpool.NewPool(s.workerCount, q, snapshotScorer{svc: s, snap: snap}, board,
		workerpool.WithLogger(log))
	pool.Start(runCtx)

	log.Info(ctx, "ranking run started",
		logger.RunID(runID),
		logger.Int("events", len(events)),
		logger.Int("workers", pool.Size()),
		logger.Strategy(ranking.Strategy),
	)

	for i := range events {
		if err := s.enqueue(runCtx, q, model.ScoreJob{RunID: runID, EventID: events[i].ID}); err != nil {
			_ = q.Close()
			return Ranking{}, fmt.Errorf("rank %s: %w", runID, err)
		}
	}
	_ = q.Close()

	if err := pool.Wait(ctx); err != nil {
		return Ranking{}, fmt.Errorf("rank %s: %w", runID, err)
	}

	entries, err := board.TopN(ctx, limit)
	if err != nil {
		return Ranking{}, fmt.Errorf("rank %s: %w", runID, err)
	}
	ranking.Entries = entries
	ranking.Scored = board.Count(ctx)
	ranking.Skipped = pool.Failed()

	metrics.RecordRankingRun(time.Since(start), ranking.Scored)
	log.Info(ctx, "ranking run finished",
		logger.RunID(runID),
		logger.Int("scored", ranking.Scored),
		logger.Int("skipped", ranking.Skipped),
		logger.Duration("elapsed_ms", time.Since(start)),
	)
	return ranking, nil
}

// enqueue retries while the queue is full.
func (s *Service) enqueue(ctx context.Context, q eventqueue.Queue, job model.ScoreJob) error {
	for {
		err := q.Enqueue(ctx, job)
		if !errors.Is(err, eventqueue.ErrQueueFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(enqueueRetryDelay):
		}
	}
}
