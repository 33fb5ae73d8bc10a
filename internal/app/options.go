package service

import (
	"github.com/okian/ascent/internal/ai/advice"
	"github.com/okian/ascent/internal/domain/arbitrage"
	"github.com/okian/ascent/internal/domain/synergy"
	"github.com/okian/ascent/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the analysis job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithTeamCount sets how many team profiles an analysis generates.
func WithTeamCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.teamCount = count
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

// WithArchive sets the game session archive. Without one, finished games
// are not persisted.
func WithArchive(a Archiver) Option {
	return func(s *Service) {
		s.archive = a
	}
}

// WithAdviceService sets the advice generator used on analyses.
func WithAdviceService(a advice.Service) Option {
	return func(s *Service) {
		if a != nil {
			s.adviser = a
		}
	}
}

// WithScorer injects a pre-built synergy scorer, typically seeded for
// deterministic team profiles.
func WithScorer(scorer *synergy.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithEngineOptions forwards options to every game engine the service
// creates, typically a fixed seed for deterministic patterns.
func WithEngineOptions(opts ...arbitrage.Option) Option {
	return func(s *Service) {
		s.engineOpts = opts
	}
}
