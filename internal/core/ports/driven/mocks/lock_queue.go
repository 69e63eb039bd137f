package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// MockAttemptLock is an in-memory AttemptLock for testing
type MockAttemptLock struct {
	mu   sync.Mutex
	held map[string]bool

	// AcquireErr, if set, is returned by Acquire
	AcquireErr error
}

// NewMockAttemptLock creates a new MockAttemptLock
func NewMockAttemptLock() *MockAttemptLock {
	return &MockAttemptLock{held: make(map[string]bool)}
}

func (m *MockAttemptLock) Acquire(ctx context.Context, attemptID string, ttl time.Duration) (bool, error) {
	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[attemptID] {
		return false, nil
	}
	m.held[attemptID] = true
	return true, nil
}

func (m *MockAttemptLock) Release(ctx context.Context, attemptID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, attemptID)
	return nil
}

// Held reports whether the lock for an attempt is currently held
func (m *MockAttemptLock) Held(attemptID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[attemptID]
}

// MockTaskQueue is an in-memory FIFO TaskQueue for testing
type MockTaskQueue struct {
	mu      sync.Mutex
	pending []*domain.Task
	tasks   map[string]*domain.Task
}

// NewMockTaskQueue creates a new MockTaskQueue
func NewMockTaskQueue() *MockTaskQueue {
	return &MockTaskQueue{tasks: make(map[string]*domain.Task)}
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, task)
	m.tasks[task.ID] = task
	return nil
}

func (m *MockTaskQueue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, task := range m.pending {
		if task.IsReady() {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			task.MarkProcessing()
			return task, nil
		}
	}
	return nil, nil
}

func (m *MockTaskQueue) Ack(ctx context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	task.MarkCompleted()
	return nil
}

func (m *MockTaskQueue) Nack(ctx context.Context, taskID string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	if task.CanRetry() {
		task.Retry(reason)
		m.pending = append(m.pending, task)
	} else {
		task.MarkFailed(reason)
	}
	return nil
}

func (m *MockTaskQueue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func (m *MockTaskQueue) Ping(ctx context.Context) error { return nil }

func (m *MockTaskQueue) Close() error { return nil }
