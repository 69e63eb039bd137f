package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

// Ensure retrievalService implements RetrievalService
var _ driving.RetrievalService = (*retrievalService)(nil)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity a chunk
	// must reach to count as relevant context.
	DefaultSimilarityThreshold = 0.7

	// DefaultTopK is the number of chunks retrieved when the caller does
	// not ask for a specific count.
	DefaultTopK = 3

	// MaxTopK caps the retrievable chunk count per query.
	MaxTopK = 5
)

// retrievalService embeds a query and delegates nearest-neighbour search to
// the chunk store. Pure pass-through: no caching, no reranking beyond the
// store's similarity ordering.
type retrievalService struct {
	chunkStore driven.ChunkStore
	services   *runtime.Services
	threshold  float64
}

// NewRetrievalService creates a new RetrievalService.
// threshold <= 0 selects DefaultSimilarityThreshold.
func NewRetrievalService(chunkStore driven.ChunkStore, services *runtime.Services, threshold float64) driving.RetrievalService {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &retrievalService{
		chunkStore: chunkStore,
		services:   services,
		threshold:  threshold,
	}
}

// Retrieve returns the chunks of the article most similar to the query.
// An empty result is a valid, common outcome, not an error.
func (s *retrievalService) Retrieve(ctx context.Context, articleID, query string, topK int) ([]domain.RetrievedChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidInput
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryEmbedding, err := embeddingService.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.chunkStore.Search(ctx, articleID, queryEmbedding, s.threshold, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return results, nil
}
