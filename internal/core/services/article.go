package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
)

// Ensure articleService implements ArticleService
var _ driving.ArticleService = (*articleService)(nil)

// articleService implements the ArticleService interface
type articleService struct {
	articleStore driven.ArticleStore
	chunkStore   driven.ChunkStore
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleStore driven.ArticleStore, chunkStore driven.ChunkStore) driving.ArticleService {
	return &articleService{
		articleStore: articleStore,
		chunkStore:   chunkStore,
	}
}

// Create registers a new article. The processed flag starts false and is
// flipped by the ingestion pipeline.
func (s *articleService) Create(ctx context.Context, title string, difficulty domain.Difficulty) (*domain.Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}
	switch difficulty {
	case domain.DifficultyFacil, domain.DifficultyMedio, domain.DifficultyDificil:
	case "":
		difficulty = domain.DifficultyMedio
	default:
		return nil, fmt.Errorf("difficulty %q: %w", difficulty, domain.ErrInvalidInput)
	}

	article := &domain.Article{
		ID:         domain.GenerateID(),
		Title:      title,
		Difficulty: difficulty,
		Processed:  false,
		CreatedAt:  time.Now(),
	}
	if err := s.articleStore.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return article, nil
}

// Get retrieves an article by ID
func (s *articleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.articleStore.Get(ctx, id)
}

// List retrieves articles with pagination
func (s *articleService) List(ctx context.Context, limit, offset int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.articleStore.List(ctx, limit, offset)
}

// Chunks retrieves the stored chunks of an article in index order
func (s *articleService) Chunks(ctx context.Context, articleID string) ([]*domain.ArticleChunk, error) {
	if _, err := s.articleStore.Get(ctx, articleID); err != nil {
		return nil, err
	}
	return s.chunkStore.GetByArticle(ctx, articleID)
}

// Delete removes an article and its chunks
func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := s.chunkStore.DeleteByArticle(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	return s.articleStore.Delete(ctx, id)
}
