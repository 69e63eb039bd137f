package mocks

import (
	"context"
	"sync"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// MockAttemptStore is a mock implementation of AttemptStore for testing
type MockAttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]*domain.Attempt
}

// NewMockAttemptStore creates a new MockAttemptStore
func NewMockAttemptStore() *MockAttemptStore {
	return &MockAttemptStore{
		attempts: make(map[string]*domain.Attempt),
	}
}

func (m *MockAttemptStore) Get(ctx context.Context, id string) (*domain.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	attempt, ok := m.attempts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (m *MockAttemptStore) Save(ctx context.Context, attempt *domain.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *attempt
	m.attempts[attempt.ID] = &copied
	return nil
}

// MockProfileStore is a mock implementation of ProfileStore for testing
type MockProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*domain.LearnerProfile
}

// NewMockProfileStore creates a new MockProfileStore
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		profiles: make(map[string]*domain.LearnerProfile),
	}
}

// Put stores a profile for later retrieval
func (m *MockProfileStore) Put(profile *domain.LearnerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.StudentID] = profile
}

func (m *MockProfileStore) Get(ctx context.Context, studentID string) (*domain.LearnerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[studentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}
