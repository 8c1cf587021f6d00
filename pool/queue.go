package pool

import "sync"

// jobQueue is the transport between Submit and the workers: an unbounded
// FIFO with one logical receiving side shared by every worker. push never
// blocks the submitter; pop blocks until a job arrives or the queue closes.
type jobQueue struct {
	mu     sync.Mutex
	ready  *sync.Cond
	jobs   []Job
	closed bool
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// push appends a job and wakes one waiting worker. It fails only once the
// queue has been closed, i.e. there is no worker left to receive the job.
func (q *jobQueue) push(j Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrPoolClosed
	}

	q.jobs = append(q.jobs, j)
	q.ready.Signal()
	return nil
}

// pop blocks the calling worker until a job is available or the queue is
// closed. The lock is held only across the dequeue itself; the caller runs
// the job outside it, so one slow job never stops other workers from
// dequeuing. Jobs queued before close are still handed out before workers
// are told to stop.
func (q *jobQueue) pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.closed {
		q.ready.Wait()
	}

	if len(q.jobs) == 0 {
		return nil, false
	}

	j := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return j, true
}

// close marks the queue closed and wakes every blocked worker.
func (q *jobQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.ready.Broadcast()
}
