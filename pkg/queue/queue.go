// Package queue provides background job processing with pluggable
// drivers. Jobs are registered by name, dispatched as JSON envelopes
// and executed by a bounded worker pool.
//
//	queue.Register("emails.welcome", func() queue.Job { return &WelcomeEmail{} })
//	queue.Dispatch(&WelcomeEmail{UserID: 42})
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stockroomhq/stockroom/pkg/logger"
	"github.com/stockroomhq/stockroom/pkg/metrics"
	"github.com/stockroomhq/stockroom/pkg/workerpool"
)

// Job is a unit of background work. Name must be stable across
// deploys because it is stored in the envelope.
type Job interface {
	Name() string
	Handle() error
}

// Driver moves envelopes between Dispatch and the workers.
type Driver interface {
	// Push enqueues a raw envelope.
	Push(ctx context.Context, payload []byte) error

	// Pop blocks until an envelope is available or ctx is cancelled.
	Pop(ctx context.Context) ([]byte, error)

	// Close releases driver resources.
	Close() error
}

// envelope is the wire format for a dispatched job.
type envelope struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Type     string    `json:"type"`
	Payload  string    `json:"payload"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

const maxAttempts = 3

var (
	mu        sync.RWMutex
	factories = map[string]func() Job{}
	driver    Driver
	failed    []FailedJob
)

// Register binds a job name to a factory that produces a zero value
// for the workers to unmarshal into.
func Register(name string, factory func() Job) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// SetDriver installs the queue driver. Call before Dispatch or
// StartWorkers.
func SetDriver(d Driver) {
	mu.Lock()
	defer mu.Unlock()
	driver = d
}

func currentDriver() Driver {
	mu.RLock()
	defer mu.RUnlock()
	return driver
}

// Dispatch enqueues a job for background execution.
func Dispatch(job Job) error {
	d := currentDriver()
	if d == nil {
		return errors.New("queue: no driver configured")
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal %s: %w", job.Name(), err)
	}
	env, err := json.Marshal(envelope{
		Type:       job.Name(),
		Payload:    payload,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return d.Push(context.Background(), env)
}

// FailedJobs returns a copy of the jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]FailedJob, len(failed))
	copy(out, failed)
	return out
}

func recordFailure(env envelope, err error) {
	mu.Lock()
	defer mu.Unlock()
	failed = append(failed, FailedJob{
		Type:     env.Type,
		Payload:  string(env.Payload),
		Error:    err.Error(),
		FailedAt: time.Now().UTC(),
	})
}

// StartWorkers consumes envelopes and executes jobs on a worker pool
// until ctx is cancelled. It returns after all in-flight jobs finish.
func StartWorkers(ctx context.Context, workers int) {
	d := currentDriver()
	if d == nil {
		logger.Warn("queue: no driver configured, workers not started")
		return
	}
	pool := workerpool.New(workers, workers*4)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pool.Shutdown(shutdownCtx); err != nil {
			logger.Warn("queue: worker pool shutdown timed out", "error", err)
		}
	}()

	for {
		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("queue: pop failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			logger.Error("queue: bad envelope", "error", err)
			metrics.QueueJobsProcessed.WithLabelValues("invalid").Inc()
			continue
		}
		if err := pool.Submit(func() { process(env) }); err != nil {
			return
		}
	}
}

// process runs one job with in-place retries and backoff.
func process(env envelope) {
	mu.RLock()
	factory, ok := factories[env.Type]
	mu.RUnlock()
	if !ok {
		logger.Error("queue: unknown job type", "type", env.Type)
		metrics.QueueJobsProcessed.WithLabelValues("unknown").Inc()
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		job := factory()
		if err := json.Unmarshal(env.Payload, job); err != nil {
			logger.Error("queue: bad payload", "type", env.Type, "error", err)
			metrics.QueueJobsProcessed.WithLabelValues("invalid").Inc()
			return
		}
		lastErr = job.Handle()
		if lastErr == nil {
			metrics.QueueJobsProcessed.WithLabelValues("ok").Inc()
			return
		}
		logger.Warn("queue: job failed",
			"type", env.Type, "attempt", attempt, "error", lastErr)
		if attempt < maxAttempts {
			time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
		}
	}
	metrics.QueueJobsProcessed.WithLabelValues("failed").Inc()
	env.Attempts = maxAttempts
	recordFailure(env, lastErr)
}
