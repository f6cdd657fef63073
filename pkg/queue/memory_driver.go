package queue

import (
	"context"
	"errors"
	"sync"
)

// MemoryDriver is a channel-backed driver for single-process
// deployments and tests.
type MemoryDriver struct {
	jobs   chan []byte
	once   sync.Once
	closed chan struct{}
}

// NewMemoryDriver returns a driver whose queue holds up to capacity
// envelopes. Capacity is clamped to at least 1.
func NewMemoryDriver(capacity int) *MemoryDriver {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryDriver{
		jobs:   make(chan []byte, capacity),
		closed: make(chan struct{}),
	}
}

func (d *MemoryDriver) Push(ctx context.Context, payload []byte) error {
	select {
	case <-d.closed:
		return errors.New("queue: memory driver closed")
	default:
	}
	select {
	case d.jobs <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.closed:
		return errors.New("queue: memory driver closed")
	}
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-d.jobs:
		return payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.closed:
		return nil, errors.New("queue: memory driver closed")
	}
}

func (d *MemoryDriver) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}
