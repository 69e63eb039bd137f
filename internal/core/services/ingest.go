package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gomot-academy/bitacora-core/internal/chunker"
	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

// Ensure IngestOrchestrator implements IngestService
var _ driving.IngestService = (*IngestOrchestrator)(nil)

// defaultEmbedInterval spaces out embedding calls to stay under the
// provider's rate limit. Throughput throttle, not a correctness requirement.
const defaultEmbedInterval = 200 * time.Millisecond

// IngestOrchestrator coordinates the article ingestion pipeline:
// extract → chunk → embed → store → mark processed.
//
// Embedding calls run strictly sequentially through a rate limiter; a
// failure on any chunk aborts the remaining chunks and the article stays
// unprocessed. Re-ingesting an already-processed article replaces its chunk
// corpus: the processed flag is reset and old chunks are deleted before the
// new run stores anything.
type IngestOrchestrator struct {
	articleStore driven.ArticleStore
	chunkStore   driven.ChunkStore
	extractor    driven.TextExtractor
	services     *runtime.Services
	chunker      *chunker.Chunker
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// IngestConfig holds dependencies for IngestOrchestrator.
type IngestConfig struct {
	ArticleStore  driven.ArticleStore
	ChunkStore    driven.ChunkStore
	Extractor     driven.TextExtractor
	Services      *runtime.Services
	WordsPerChunk int
	EmbedInterval time.Duration
	Logger        *slog.Logger
}

// NewIngestOrchestrator creates a new ingestion orchestrator.
func NewIngestOrchestrator(cfg IngestConfig) *IngestOrchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.EmbedInterval
	if interval <= 0 {
		interval = defaultEmbedInterval
	}

	return &IngestOrchestrator{
		articleStore: cfg.ArticleStore,
		chunkStore:   cfg.ChunkStore,
		extractor:    cfg.Extractor,
		services:     cfg.Services,
		chunker:      chunker.New(cfg.WordsPerChunk),
		limiter:      rate.NewLimiter(rate.Every(interval), 1),
		logger:       logger,
	}
}

// Ingest runs the full pipeline for one article payload.
// Returns the first fatal error encountered; on any failure the article's
// processed flag stays false.
func (o *IngestOrchestrator) Ingest(ctx context.Context, articleID string, payload []byte) (*domain.IngestResult, error) {
	start := time.Now()

	article, err := o.articleStore.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	embeddingService := o.services.EmbeddingService()
	if embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	o.logger.Info("starting ingestion", "article_id", articleID, "bytes", len(payload))

	// Re-ingest replaces the existing corpus. Reset the flag first so
	// readers never see a half-replaced corpus marked processed.
	if article.Processed {
		if err := o.articleStore.SetProcessed(ctx, articleID, false, 0); err != nil {
			return nil, fmt.Errorf("reset processed flag: %w", err)
		}
		if err := o.chunkStore.DeleteByArticle(ctx, articleID); err != nil {
			return nil, fmt.Errorf("delete previous chunks: %w", err)
		}
		o.logger.Info("replaced previous corpus", "article_id", articleID)
	}

	// Extract
	extracted, err := o.extractor.Extract(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, fmt.Errorf("article %s: %w", articleID, domain.ErrNoExtractableText)
	}

	// Chunk
	chunks := o.chunker.Split(extracted.Text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("article %s: %w", articleID, domain.ErrNoExtractableText)
	}
	pageOf := pageLocator(extracted.Pages, o.chunker.WordsPerChunk)

	// Embed, strictly sequentially, throttled
	now := time.Now()
	stored := make([]*domain.ArticleChunk, 0, len(chunks))
	for i, chunk := range chunks {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("embed throttle: %w", err)
		}

		embeddings, err := embeddingService.Embed(ctx, []string{chunk.Text})
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %d: %w", i, len(chunks), err)
		}
		if len(embeddings) == 0 || len(embeddings[0]) == 0 {
			return nil, fmt.Errorf("embed chunk %d: empty embedding returned", i)
		}

		stored = append(stored, &domain.ArticleChunk{
			ID:         fmt.Sprintf("%s-chunk-%d", articleID, i),
			ArticleID:  articleID,
			ChunkIndex: i,
			Content:    chunk.Text,
			WordCount:  chunk.WordCount,
			PageNumber: pageOf(i),
			Embedding:  embeddings[0],
			CreatedAt:  now,
		})
	}

	// Store
	if err := o.chunkStore.SaveBatch(ctx, stored); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	if err := o.articleStore.SetProcessed(ctx, articleID, true, len(extracted.Pages)); err != nil {
		return nil, fmt.Errorf("mark processed: %w", err)
	}

	duration := time.Since(start)
	o.logger.Info("ingestion completed",
		"article_id", articleID,
		"chunks", len(stored),
		"pages", len(extracted.Pages),
		"duration", duration,
	)

	return &domain.IngestResult{
		ArticleID:  articleID,
		ChunkCount: len(stored),
		PageCount:  len(extracted.Pages),
		Duration:   duration,
	}, nil
}

// pageLocator maps a chunk index to the 1-based page its first word falls
// on. Returns nil for documents without page structure.
func pageLocator(pages []driven.PageText, wordsPerChunk int) func(chunkIndex int) *int {
	if len(pages) == 0 {
		return func(int) *int { return nil }
	}

	// Cumulative word count at the end of each page
	bounds := make([]int, len(pages))
	total := 0
	for i, page := range pages {
		total += len(strings.Fields(page.Text))
		bounds[i] = total
	}

	return func(chunkIndex int) *int {
		startWord := chunkIndex * wordsPerChunk
		for i, bound := range bounds {
			if startWord < bound {
				n := pages[i].Number
				return &n
			}
		}
		n := pages[len(pages)-1].Number
		return &n
	}
}
