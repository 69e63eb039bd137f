package mocks

import (
	"context"
	"sync"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

type storedPayload struct {
	contentType string
	data        []byte
}

// MockPayloadStore is a mock implementation of PayloadStore for testing
type MockPayloadStore struct {
	mu       sync.RWMutex
	payloads map[string]storedPayload

	// SaveErr, if set, is returned by SavePayload
	SaveErr error
}

// NewMockPayloadStore creates a new MockPayloadStore
func NewMockPayloadStore() *MockPayloadStore {
	return &MockPayloadStore{
		payloads: make(map[string]storedPayload),
	}
}

func (m *MockPayloadStore) SavePayload(ctx context.Context, articleID, contentType string, data []byte) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	m.payloads[articleID] = storedPayload{contentType: contentType, data: copied}
	return nil
}

func (m *MockPayloadStore) GetPayload(ctx context.Context, articleID string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payloads[articleID]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	copied := make([]byte, len(p.data))
	copy(copied, p.data)
	return copied, p.contentType, nil
}

func (m *MockPayloadStore) DeletePayload(ctx context.Context, articleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payloads, articleID)
	return nil
}
