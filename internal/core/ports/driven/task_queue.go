package driven

import (
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// TaskQueue handles background task queuing and processing.
// Implementations can use Redis (preferred) or Postgres (fallback).
type TaskQueue interface {
	// Enqueue adds a task to the queue for processing
	Enqueue(ctx context.Context, task *domain.Task) error

	// DequeueWithTimeout retrieves the next available task, waiting up to
	// timeout seconds. Returns nil, nil if no task became available.
	// The task is marked as processing and will not be returned to other
	// workers.
	DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error)

	// Ack acknowledges successful completion of a task
	Ack(ctx context.Context, taskID string) error

	// Nack indicates task processing failed. The task is retried with
	// backoff, or marked failed once max attempts are exhausted.
	Nack(ctx context.Context, taskID string, reason string) error

	// GetTask retrieves a task by ID (for status checking)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// Ping checks if the queue backend is healthy
	Ping(ctx context.Context) error

	// Close cleans up resources
	Close() error
}
