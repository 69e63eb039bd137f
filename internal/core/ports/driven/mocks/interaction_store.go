package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// MockInteractionStore is an append-only in-memory interaction log.
// Timestamps are assigned monotonically so chronological-order assertions
// are stable even when turns land within the same wall-clock instant.
type MockInteractionStore struct {
	mu        sync.RWMutex
	byAttempt map[string][]*domain.Interaction
	lastStamp time.Time

	// SaveErr, if set, is returned by Save. SaveErrAfter limits the failure
	// to saves after the first n successful ones (to fail only the tutor
	// turn of a pair).
	SaveErr      error
	SaveErrAfter int
	saved        int
}

// NewMockInteractionStore creates a new MockInteractionStore
func NewMockInteractionStore() *MockInteractionStore {
	return &MockInteractionStore{
		byAttempt: make(map[string][]*domain.Interaction),
	}
}

func (m *MockInteractionStore) Save(ctx context.Context, interaction *domain.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil && m.saved >= m.SaveErrAfter {
		return m.SaveErr
	}
	m.saved++

	copied := *interaction
	if copied.ID == "" {
		copied.ID = domain.GenerateID()
	}
	stamp := time.Now()
	if !stamp.After(m.lastStamp) {
		stamp = m.lastStamp.Add(time.Microsecond)
	}
	m.lastStamp = stamp
	copied.CreatedAt = stamp

	m.byAttempt[interaction.AttemptID] = append(m.byAttempt[interaction.AttemptID], &copied)
	return nil
}

func (m *MockInteractionStore) ListByAttempt(ctx context.Context, attemptID string) ([]*domain.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	log := m.byAttempt[attemptID]
	out := make([]*domain.Interaction, len(log))
	for i, in := range log {
		copied := *in
		out[i] = &copied
	}
	return out, nil
}

func (m *MockInteractionStore) ListRecent(ctx context.Context, attemptID string, n int) ([]*domain.Interaction, error) {
	all, err := m.ListByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}
