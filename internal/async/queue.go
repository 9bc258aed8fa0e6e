package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"log/slog"
)

// Job identifies one unit of pipeline work.
type Job struct {
	JobID     int64
	ImagePath string
}

// Processor runs the pipeline for one job.
type Processor interface {
	Process(ctx context.Context, jobID int64, imagePath string) error
}

// ErrShuttingDown is returned by Enqueue once Shutdown has begun.
var ErrShuttingDown = errors.New("queue is shutting down")

// Queue dispatches jobs to a fixed pool of workers. Submission handlers hand
// a job off and return immediately; each worker bounds a job's runtime with
// a timeout so a hung OCR call resolves into a failed record instead of a
// permanently processing one.
type Queue struct {
	proc    Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan item
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type item struct {
	job  Job
	done chan error
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan item, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(proc Processor, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan item, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for it := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.proc.Process(ctx, it.job.JobID, it.job.ImagePath)
					cancel()

					if err != nil {
						q.logger.Error("processing failed", "worker_id", workerID, "job_id", it.job.JobID, "error", err)
					} else {
						q.logger.Info("processed job", "worker_id", workerID, "job_id", it.job.JobID)
					}
					it.done <- err
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue hands a job to the pool. The returned channel receives the job's
// terminal pipeline error (nil on success) exactly once; callers that do not
// care about completion may drop it.
func (q *Queue) Enqueue(ctx context.Context, job Job) (<-chan error, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "job_id", job.JobID)
		return nil, ErrShuttingDown
	}
	it := item{job: job, done: make(chan error, 1)}
	select {
	case q.ch <- it:
		q.logger.Info("queued job for processing", "job_id", job.JobID)
	default:
		q.logger.Warn("queue full, applying backpressure", "job_id", job.JobID)
		select {
		case q.ch <- it:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return it.done, nil
}

// Shutdown stops intake, drains in-flight jobs, and waits for workers up to
// ctx's deadline.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
