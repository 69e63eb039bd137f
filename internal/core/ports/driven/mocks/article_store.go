package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// MockArticleStore is a mock implementation of ArticleStore for testing
type MockArticleStore struct {
	mu       sync.RWMutex
	articles map[string]*domain.Article

	// SaveErr, if set, is returned by Save
	SaveErr error
}

// NewMockArticleStore creates a new MockArticleStore
func NewMockArticleStore() *MockArticleStore {
	return &MockArticleStore{
		articles: make(map[string]*domain.Article),
	}
}

func (m *MockArticleStore) Save(ctx context.Context, article *domain.Article) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *article
	m.articles[article.ID] = &copied
	return nil
}

func (m *MockArticleStore) Get(ctx context.Context, id string) (*domain.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	article, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *article
	return &copied, nil
}

func (m *MockArticleStore) List(ctx context.Context, limit, offset int) ([]*domain.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*domain.Article, 0, len(m.articles))
	for _, a := range m.articles {
		copied := *a
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockArticleStore) SetProcessed(ctx context.Context, id string, processed bool, pageCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	article.Processed = processed
	if processed {
		now := time.Now()
		article.ProcessedAt = &now
		article.PageCount = pageCount
	} else {
		article.ProcessedAt = nil
	}
	return nil
}

func (m *MockArticleStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *MockArticleStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.articles), nil
}
