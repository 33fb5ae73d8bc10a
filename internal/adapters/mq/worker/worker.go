// Package worker runs the asynchronous resume analysis pipeline.
//
// Workers pull analysis jobs off the queue, run the synergy analysis, and
// hand the finished report to a sink for storage. Failures are logged and
// counted; a failed job never stops the pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/ascent/internal/domain/model"
	"github.com/okian/ascent/internal/domain/types"
	"github.com/okian/ascent/pkg/logger"
	"github.com/okian/ascent/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.AnalysisJob

// Analyzer runs a full synergy analysis for one job.
type Analyzer interface {
	Analyze(ctx context.Context, job Job) (types.AnalysisReport, error)
}

// Sink receives finished analysis reports.
type Sink interface {
	Complete(ctx context.Context, report types.AnalysisReport)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes analysis jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing analysis jobs.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	sink     Sink
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, analyzer Analyzer, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		analyzer: analyzer,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop.
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing analysis job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob runs one analysis and delivers the report to the sink. An
// analysis failure still produces a report so the caller can observe the
// failed status.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	report, err := w.analyzer.Analyze(ctx, job)
	if err != nil {
		metrics.RecordAnalysisError()
		report = types.AnalysisReport{
			AnalysisID: job.AnalysisID,
			RequestID:  job.RequestID,
			Status:     types.AnalysisFailed,
		}
		w.sink.Complete(ctx, report)
		w.logger.Error(ctx, "analysis failed",
			logger.String("analysisID", job.AnalysisID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to analyze %s: %w", job.AnalysisID, err)
	}

	w.sink.Complete(ctx, report)
	metrics.RecordAnalysisCompleted()
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive workerCount scales with
// the machine's CPU count.
func NewPool(workerCount int, queue Queue, analyzer Analyzer, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			analyzer,
			sink,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)

	return nil
}
