// Package workerpool provides the bounded executor that runs streaming chat
// turns. The pool is a deliberate backpressure mechanism: a fixed number of
// workers drain a bounded queue, and submissions beyond pool+queue capacity
// are rejected immediately instead of queuing without bound.
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolSaturated is returned by Submit when both the workers and the
// queue are full.
var ErrPoolSaturated = errors.New("workerpool: saturated")

// Pool runs submitted tasks on a fixed set of workers.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New starts a pool with the given number of workers and queue slots.
func New(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{
		tasks: make(chan func(), queueSize),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues task for execution. It never blocks: when the queue is
// full it fails fast with ErrPoolSaturated.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolSaturated
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolSaturated
	}
}

// Shutdown stops accepting work and waits for queued tasks to finish.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}
