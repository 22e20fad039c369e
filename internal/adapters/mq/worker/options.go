package worker

import (
	"github.com/okian/tixroi/pkg/logger"
)

// Option configures an InMemoryWorker. Options passed to NewPool apply to
// every worker of the pool.
type Option func(*InMemoryWorker)

// WithName tags the worker's log lines; the pool names its workers worker-N.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger replaces the package default logger, typically with a ranking
// run's logger so worker lines share its name.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFailureHandler is called for every job that could not be scored or
// posted. It may be called from several workers at once.
func WithFailureHandler(fn func(job Job, err error)) Option {
	return func(w *InMemoryWorker) {
		if fn != nil {
			w.onFailure = fn
		}
	}
}
