package service

import (
	"github.com/okian/tixroi/internal/domain/scoring"
	"github.com/okian/tixroi/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStrategy selects the ROI estimation strategy.
func WithStrategy(strategy scoring.Strategy) Option {
	return func(s *Service) {
		if strategy != nil {
			s.strategy = strategy
		}
	}
}

// WithWorkerCount sets the number of ranking workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of a ranking run's job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
