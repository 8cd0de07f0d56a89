package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SpotTheSpy/backend/internal/config"
)

// ErrQueueFull is returned when the queue is saturated; the caller decides
// whether that is fatal for the request.
var ErrQueueFull = errors.New("job queue is full")

// Job is one unit of deferred work. Run is retried on failure, so it must
// be safe to execute more than once.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Queue is a bounded in-process job queue with a fixed worker pool.
// Failed jobs are retried with backoff and logged, so deferred work is
// observable instead of fire-and-forget.
type Queue struct {
	jobs    chan Job
	workers int
	wg      sync.WaitGroup

	// mu orders Enqueue's send against Stop's close, so late producers
	// (the cleanup sweep during shutdown) get ErrQueueFull instead of a
	// send on a closed channel.
	mu      sync.Mutex
	stopped bool
}

func NewQueue(capacity, workers int) *Queue {
	return &Queue{
		jobs:    make(chan Job, capacity),
		workers: workers,
	}
}

func (q *Queue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	log.Info().Int("workers", q.workers).Int("capacity", cap(q.jobs)).Msg("job queue started")
}

// Stop drains queued jobs and waits for workers to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	log.Info().Msg("job queue stopped")
}

func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return ErrQueueFull
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		log.Warn().Str("job", job.Name).Msg("job queue saturated, rejecting job")
		return ErrQueueFull
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for job := range q.jobs {
		q.execute(job)
	}
}

func (q *Queue) execute(job Job) {
	for attempt := 1; attempt <= config.JobMaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.JobTimeout)
		err := job.Run(ctx)
		cancel()

		if err == nil {
			if attempt > 1 {
				log.Info().Str("job", job.Name).Int("attempt", attempt).Msg("job succeeded after retry")
			}
			return
		}

		log.Error().Err(err).Str("job", job.Name).Int("attempt", attempt).Msg("job failed")

		if attempt < config.JobMaxAttempts {
			time.Sleep(config.JobRetryBackoff * time.Duration(attempt))
		}
	}

	log.Error().Str("job", job.Name).Int("attempts", config.JobMaxAttempts).Msg("job dropped after exhausting retries")
}
