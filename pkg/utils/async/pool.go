package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Job is a unit of background work
type Job func(ctx context.Context) error

type task struct {
	ctx context.Context
	job Job
}

// Pool runs jobs on a fixed number of workers fed by a bounded queue
type Pool struct {
	queue chan task
	wg    sync.WaitGroup
	once  sync.Once
}

// NewPool starts workers goroutines reading from a queue of queueSize slots
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{
		queue: make(chan task, queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues job without blocking. It returns false when the queue is full.
//
// The job runs with a new background context that keeps the logger of ctx,
// so cancellation of the originating request does not abort it.
func (p *Pool) Submit(ctx context.Context, job Job) bool {
	t := task{ctx: newBackgroundContext(ctx), job: job}

	select {
	case p.queue <- t:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits until queued jobs have finished
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		run(t.ctx, t.job)
	}
}

func run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(ctx).Error("panic in async job",
				"recover", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := job(ctx); err != nil {
		ctxlog.From(ctx).Error("error in async job", "error", err)
	}
}

func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
