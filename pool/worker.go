package pool

import (
	"fmt"
	"log/slog"
	"sync"
)

// Worker is a single worker instance
type Worker struct {
	// the worker id, unique and sequential within its pool
	id int

	// queue from which the worker consumes work
	queue *jobQueue

	// used to signal the pool to clean itself up
	wg *sync.WaitGroup

	log *slog.Logger
}

func NewWorker(id int, queue *jobQueue, wg *sync.WaitGroup, log *slog.Logger) *Worker {
	return &Worker{
		id:    id,
		wg:    wg,
		log:   log,
		queue: queue,
	}
}

// Id returns the worker's id.
func (w *Worker) Id() int { return w.id }

// Start runs the worker loop: block for a job, execute it, repeat until the
// queue is closed. It is expected to run on its own goroutine.
func (w *Worker) Start() {
	w.log.Info(fmt.Sprintf("starting worker %d", w.id))

	defer func() {
		w.wg.Done()
		w.log.Info(fmt.Sprintf("worker %d has been stopped", w.id))
	}()

	// a job that panics takes this worker with it: the loop ends here and
	// the pool runs one worker short until it is stopped
	defer func() {
		if r := recover(); r != nil {
			w.log.Error(fmt.Sprintf("worker %d lost to a panicking job: %v", w.id, r))
		}
	}()

	for {
		job, ok := w.queue.pop()
		if !ok {
			return
		}

		w.log.Info(fmt.Sprintf("worker %d got a job; executing", w.id))
		job()
	}
}
