package driving

import (
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// ArticleService manages uploaded articles and their chunk corpus
type ArticleService interface {
	// Create registers a new article from an upload and returns it.
	// Ingestion is triggered separately (queued or synchronous).
	Create(ctx context.Context, title string, difficulty domain.Difficulty) (*domain.Article, error)

	// Get retrieves an article by ID
	Get(ctx context.Context, id string) (*domain.Article, error)

	// List retrieves articles with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Article, error)

	// Chunks retrieves the stored chunks of an article in index order
	Chunks(ctx context.Context, articleID string) ([]*domain.ArticleChunk, error)

	// Delete removes an article and its chunks
	Delete(ctx context.Context, id string) error
}

// IngestService runs the ingestion pipeline for an article
type IngestService interface {
	// Ingest extracts, chunks, embeds, and stores the article text, then
	// marks the article processed. Re-ingesting a processed article replaces
	// its chunk corpus.
	Ingest(ctx context.Context, articleID string, payload []byte) (*domain.IngestResult, error)
}
