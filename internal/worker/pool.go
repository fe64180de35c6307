package worker

import (
	"context"
	"sync"
)

// Job is one unit of work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

// Pool runs jobs across a fixed number of workers. Usage is submit-all then
// Wait; the pool is not reusable after Wait returns.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// NewPool creates a pool with the given worker count
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues one job. Submissions after Close panic; submissions after
// Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Close seals the queue. Call it once the last job is submitted, from the
// submitting goroutine; Wait can already be draining on another.
func (p *Pool) Close() {
	close(p.jobs)
}

// Wait lets the workers drain the queue and returns every result. Both
// channels are small, so the submitter must run concurrently with Wait for
// batches larger than the buffers; otherwise workers stall on a full results
// channel and Submit stalls behind them.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown stops the pool without draining the queue
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.once.Do(func() { close(p.results) })
}
