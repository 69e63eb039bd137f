package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// MockChunkStore is a mock implementation of ChunkStore for testing.
// Search results are configured per article via SetSearchResults; the mock
// applies the threshold, ordering, and topK semantics of the real store.
type MockChunkStore struct {
	mu        sync.RWMutex
	byArticle map[string][]*domain.ArticleChunk
	results   map[string][]domain.RetrievedChunk

	// SaveErr, if set, is returned by SaveBatch
	SaveErr error

	// SearchErr, if set, is returned by Search
	SearchErr error
}

// NewMockChunkStore creates a new MockChunkStore
func NewMockChunkStore() *MockChunkStore {
	return &MockChunkStore{
		byArticle: make(map[string][]*domain.ArticleChunk),
		results:   make(map[string][]domain.RetrievedChunk),
	}
}

// SetSearchResults configures the candidate results Search filters and ranks
func (m *MockChunkStore) SetSearchResults(articleID string, results []domain.RetrievedChunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[articleID] = results
}

func (m *MockChunkStore) SaveBatch(ctx context.Context, chunks []*domain.ArticleChunk) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunk := range chunks {
		copied := *chunk
		m.byArticle[chunk.ArticleID] = append(m.byArticle[chunk.ArticleID], &copied)
	}
	return nil
}

func (m *MockChunkStore) Search(ctx context.Context, articleID string, embedding []float32, threshold float64, topK int) ([]domain.RetrievedChunk, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []domain.RetrievedChunk
	for _, rc := range m.results[articleID] {
		if rc.Similarity >= threshold {
			matched = append(matched, rc)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Similarity > matched[j].Similarity })
	if topK > 0 && len(matched) > topK {
		matched = matched[:topK]
	}
	return matched, nil
}

func (m *MockChunkStore) GetByArticle(ctx context.Context, articleID string) ([]*domain.ArticleChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunks := make([]*domain.ArticleChunk, 0, len(m.byArticle[articleID]))
	for _, chunk := range m.byArticle[articleID] {
		copied := *chunk
		chunks = append(chunks, &copied)
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkIndex < chunks[j].ChunkIndex })
	return chunks, nil
}

func (m *MockChunkStore) CountByArticle(ctx context.Context, articleID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byArticle[articleID]), nil
}

func (m *MockChunkStore) DeleteByArticle(ctx context.Context, articleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byArticle, articleID)
	return nil
}
