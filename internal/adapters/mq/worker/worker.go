// Package worker runs score jobs off a queue and posts results to the board.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/pkg/logger"
	"github.com/okian/tixroi/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Job abstracts what workers read off the queue.
type Job = model.ScoreJob

// Updater posts a scored recommendation.
type Updater interface {
	Upsert(ctx context.Context, rec model.Recommendation) (bool, error)
}

// Scorer produces the recommendation for one event.
type Scorer interface {
	Recommend(ctx context.Context, eventID int) (model.Recommendation, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue drains.
	Run(ctx context.Context)

	// Shutdown stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	scorer    Scorer
	updater   Updater
	name      string
	onFailure func(job Job, err error)

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, scorer Scorer, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		scorer:    scorer,
		updater:   updater,
		name:      "worker",
		onFailure: func(Job, error) {},
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.onFailure(job, err)
			}
		}
	}
}

// Shutdown signals the worker to stop and waits for it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(time.Since(start))
	}()

	rec, err := w.scorer.Recommend(ctx, job.EventID)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "scoring_error")
		w.logger.Warn(ctx, "scoring failed",
			logger.RunID(job.RunID),
			logger.EventID(job.EventID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to score event %d: %w", job.EventID, err)
	}

	if _, err := w.updater.Upsert(ctx, rec); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "board_error")
		w.logger.Error(ctx, "board update failed",
			logger.RunID(job.RunID),
			logger.EventID(job.EventID),
			logger.Error(err),
		)
		return fmt.Errorf("board update failed: %w", err)
	}

	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	failed  atomic.Int64
	logger  logger.Logger
}

// NewPool creates a new worker pool. A non-positive count uses one worker per
// CPU.
func NewPool(workerCount int, queue Queue, scorer Scorer, updater Updater, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(queue, scorer, updater,
			append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)...)
		next := w.onFailure
		w.onFailure = func(job Job, err error) {
			pool.failed.Add(1)
			next(job, err)
		}
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Failed returns how many jobs failed so far.
func (p *Pool) Failed() int { return int(p.failed.Load()) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has returned, which happens once the queue
// is closed and drained or ctx is canceled.
func (p *Pool) Wait(ctx context.Context) error {
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Shutdown closes the queue when it supports it and stops every worker.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
