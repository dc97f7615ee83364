// Package queue provides the bounded worker pool the scanning pipeline
// dispatches per-file extraction jobs onto.
package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prismon/mediameta/pkg/logger"
)

var log = logger.WithName("queue")

// Job is a unit of work to be processed by the pool.
type Job interface {
	Execute(ctx context.Context) error
	ID() string
}

// WorkerPool manages a fixed set of workers draining a bounded job
// channel. Submit blocks while the queue is full, which keeps a
// directory walk from racing ahead of extraction.
type WorkerPool struct {
	workerCount int
	jobs        chan Job
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	started atomic.Bool
	closed  atomic.Bool

	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewWorkerPool creates a pool with the given worker and queue sizes.
func NewWorkerPool(workerCount, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = workerCount
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		jobs:        make(chan Job, queueSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the workers. Starting twice is a no-op.
func (wp *WorkerPool) Start() {
	if wp.started.Swap(true) {
		return
	}

	log.WithField("workerCount", wp.workerCount).Debug("Starting worker pool")
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	workerLog := log.WithField("workerID", id)
	for {
		select {
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			if err := job.Execute(wp.ctx); err != nil {
				wp.jobsFailed.Add(1)
				workerLog.WithError(err).WithField("jobID", job.ID()).Debug("Job failed")
			}
			wp.jobsProcessed.Add(1)
		case <-wp.ctx.Done():
			return
		}
	}
}

// Submit queues a job, blocking while the queue is full. It fails once
// the pool is closed or cancelled.
func (wp *WorkerPool) Submit(job Job) error {
	if wp.closed.Load() {
		return fmt.Errorf("worker pool is closed")
	}

	select {
	case wp.jobs <- job:
		return nil
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is shutting down")
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (wp *WorkerPool) Stop() {
	if wp.closed.Swap(true) {
		return
	}
	close(wp.jobs)
	wp.wg.Wait()
	wp.cancel()
}

// Cancel abandons queued work and stops the workers as soon as their
// current job finishes.
func (wp *WorkerPool) Cancel() {
	if wp.closed.Swap(true) {
		return
	}
	wp.cancel()
	wp.wg.Wait()
}

// Processed returns the number of jobs executed so far.
func (wp *WorkerPool) Processed() int64 {
	return wp.jobsProcessed.Load()
}

// Failed returns the number of jobs that returned an error.
func (wp *WorkerPool) Failed() int64 {
	return wp.jobsFailed.Load()
}
