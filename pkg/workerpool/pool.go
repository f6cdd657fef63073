// Package workerpool provides a bounded pool of goroutines with a
// buffered task queue and graceful shutdown.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrPoolClosed is returned by Submit after Shutdown has started.
	ErrPoolClosed = errors.New("workerpool: pool is closed")

	// ErrPoolFull is returned by TrySubmit when the task queue is full.
	ErrPoolFull = errors.New("workerpool: task queue is full")
)

// Task is a unit of work executed by a pool worker.
type Task func()

// Pool runs submitted tasks on a fixed number of worker goroutines.
type Pool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// New starts a pool with the given number of workers and queue capacity.
// Both are clamped to at least 1.
func New(workers, capacity int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	p := &Pool{tasks: make(chan Task, capacity)}
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

// Submit enqueues a task, blocking while the queue is full. The send
// happens under the same lock Shutdown takes before closing the channel,
// so a task is either enqueued or rejected, never sent on a closed
// channel.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// TrySubmit enqueues a task without blocking.
func (p *Pool) TrySubmit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting tasks and waits for queued tasks to drain,
// or for ctx to be cancelled, whichever comes first.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
