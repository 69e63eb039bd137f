package driven

import (
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// ArticleStore handles article persistence (PostgreSQL)
type ArticleStore interface {
	// Save creates or updates an article
	Save(ctx context.Context, article *domain.Article) error

	// Get retrieves an article by ID
	Get(ctx context.Context, id string) (*domain.Article, error)

	// List retrieves articles with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Article, error)

	// SetProcessed flips the article's processed flag.
	// Marking processed also records the page count and timestamp.
	SetProcessed(ctx context.Context, id string, processed bool, pageCount int) error

	// Delete deletes an article (chunks cascade in the database)
	Delete(ctx context.Context, id string) error

	// Count returns the total article count
	Count(ctx context.Context) (int, error)
}

// PayloadStore holds raw uploaded article bytes until the ingestion worker
// consumes them. Payloads survive process restarts so queued ingestions are
// never orphaned.
type PayloadStore interface {
	// SavePayload stores (or replaces) the raw payload for an article
	SavePayload(ctx context.Context, articleID, contentType string, data []byte) error

	// GetPayload retrieves the raw payload and its content type
	GetPayload(ctx context.Context, articleID string) (data []byte, contentType string, err error)

	// DeletePayload removes the stored payload after a successful ingestion
	DeletePayload(ctx context.Context, articleID string) error
}

// ChunkStore persists article chunks with their embeddings and exposes
// nearest-neighbour search. The similarity computation itself is delegated
// to the underlying vector-capable store (pgvector); this port is a thin
// typed wrapper, not an index implementation.
type ChunkStore interface {
	// SaveBatch inserts chunks in a single transaction
	SaveBatch(ctx context.Context, chunks []*domain.ArticleChunk) error

	// Search returns up to topK chunks of the given article whose cosine
	// similarity to the query embedding is at least threshold, ordered by
	// similarity descending. Never returns chunks of another article.
	Search(ctx context.Context, articleID string, embedding []float32, threshold float64, topK int) ([]domain.RetrievedChunk, error)

	// GetByArticle retrieves all chunks for an article ordered by chunk index
	GetByArticle(ctx context.Context, articleID string) ([]*domain.ArticleChunk, error)

	// CountByArticle returns the chunk count for an article
	CountByArticle(ctx context.Context, articleID string) (int, error)

	// DeleteByArticle deletes all chunks for an article (re-ingest replace)
	DeleteByArticle(ctx context.Context, articleID string) error
}
