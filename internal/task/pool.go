// Package task runs cancellable background jobs on a worker pool.
// Jobs are identified by (kind, key); submitting a job with the same
// identity cancels the one already queued or running. Completed jobs
// post a Result onto the main loop's event queue; workers never touch
// editor state.
package task

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Kind classifies a job for identity and routing of its result.
type Kind int

const (
	KindParse Kind = iota
	KindWalk
	KindRead
	KindWrite
)

// JobID identifies a job. Two jobs with the same JobID are totally
// ordered by submission: the later one cancels the earlier.
type JobID struct {
	Kind Kind
	Key  string
}

// Result is what a finished job posts to the main loop.
type Result struct {
	ID    JobID
	Value any
	Err   error
}

// Context is handed to running jobs for cooperative cancellation.
// Long-running jobs poll Cancelled between yield points.
type Context struct {
	cancelled *atomic.Bool
}

// Cancelled reports whether the job has been superseded.
func (c *Context) Cancelled() bool { return c.cancelled.Load() }

// Job is a unit of background work. It must not touch editor state;
// everything it needs arrives captured in its closure as snapshots.
type Job func(ctx *Context) (any, error)

type queued struct {
	id        JobID
	job       Job
	cancelled *atomic.Bool
}

// Pool is a fixed-size worker pool.
type Pool struct {
	jobs    chan queued
	results chan<- Result
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending map[JobID]*atomic.Bool
}

// DefaultWorkers returns the pool size: leave two CPUs for the main
// loop and the terminal, but always run at least two workers.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 2
	if n < 2 {
		n = 2
	}
	if n > 8 {
		n = 8
	}
	return n
}

// NewPool starts workers delivering results into the given channel.
func NewPool(workers int, results chan<- Result) *Pool {
	if workers < 2 {
		workers = 2
	}
	p := &Pool{
		jobs:    make(chan queued, 64),
		results: results,
		done:    make(chan struct{}),
		pending: make(map[JobID]*atomic.Bool),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a job, cancelling any pending job with the same id.
func (p *Pool) Submit(id JobID, job Job) {
	flag := &atomic.Bool{}

	p.mu.Lock()
	if prev, ok := p.pending[id]; ok {
		prev.Store(true)
	}
	p.pending[id] = flag
	p.mu.Unlock()

	select {
	case p.jobs <- queued{id: id, job: job, cancelled: flag}:
	case <-p.done:
	}
}

// Cancel cancels a pending job without replacing it.
func (p *Pool) Cancel(id JobID) {
	p.mu.Lock()
	if flag, ok := p.pending[id]; ok {
		flag.Store(true)
		delete(p.pending, id)
	}
	p.mu.Unlock()
}

// Shutdown stops the workers. Queued jobs are dropped.
func (p *Pool) Shutdown() {
	close(p.done)
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case q := <-p.jobs:
			p.run(q)
		}
	}
}

func (p *Pool) run(q queued) {
	if q.cancelled.Load() {
		return
	}
	ctx := &Context{cancelled: q.cancelled}
	value, err := q.job(ctx)

	// A job superseded while running drops its result silently;
	// JobCancelled never reaches the user.
	if q.cancelled.Load() {
		return
	}

	p.mu.Lock()
	if p.pending[q.id] == q.cancelled {
		delete(p.pending, q.id)
	}
	p.mu.Unlock()

	select {
	case p.results <- Result{ID: q.id, Value: value, Err: err}:
	case <-p.done:
	}
}
