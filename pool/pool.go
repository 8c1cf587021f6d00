package pool

import (
	"errors"
	"log/slog"
	"os"
	"sync"
)

var (
	// ErrZeroSize is returned by Build when asked for a pool with no workers.
	ErrZeroSize = errors.New("pool size must be at least one")

	// ErrPoolClosed is returned by Submit once the pool has been stopped.
	ErrPoolClosed = errors.New("worker pool is not active")
)

// Job is an opaque unit of work. It is executed exactly once, by exactly
// one worker, some time after Submit returns.
type Job func()

// Pool owns a fixed set of workers and the sending side of the job queue.
// The size is fixed at construction and the workers start immediately;
// there is no separate start step.
type Pool struct {
	// queue from which workers consume work
	queue *jobQueue

	workers []*Worker

	// ensure the pool can only be stopped once
	stop sync.Once

	wg *sync.WaitGroup

	log *slog.Logger
}

// New builds a pool of size workers and panics if size is less than one.
// Use it when the caller guarantees a valid size by contract; use Build
// when the size comes from configuration and the caller wants an error
// instead.
func New(size int, log *slog.Logger) *Pool {
	p, err := Build(size, log)
	if err != nil {
		panic(err)
	}
	return p
}

// Build builds a pool of size workers, or returns ErrZeroSize if size is
// less than one. On success the workers are already running.
func Build(size int, log *slog.Logger) (*Pool, error) {
	if size < 1 {
		return nil, ErrZeroSize
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	p := &Pool{
		queue:   newJobQueue(),
		workers: make([]*Worker, size),
		wg:      &sync.WaitGroup{},
		stop:    sync.Once{},
		log:     log,
	}

	for i := 0; i < size; i++ {
		w := NewWorker(i, p.queue, p.wg, p.log)
		p.workers[i] = w
		p.wg.Add(1)
		go w.Start()
	}

	return p, nil
}

// Size returns the number of workers the pool was built with.
func (p *Pool) Size() int { return len(p.workers) }

// Submit hands a job to the pool and returns immediately; some idle worker
// will pick it up. The caller gets no completion signal and no ordering
// promise across workers. Submit fails only after Stop, when no worker is
// left to receive the job.
func (p *Pool) Submit(job Job) error {
	return p.queue.push(job)
}

// Stop closes the queue and waits for the workers to drain the jobs that
// were already queued. Jobs submitted after Stop are rejected with
// ErrPoolClosed. Safe to call more than once.
func (p *Pool) Stop() error {
	p.stop.Do(func() {
		p.log.Info("stopping worker pool")

		p.queue.close()
		p.wg.Wait()

		p.log.Info("worker pool has been stopped")
	})
	return nil
}
