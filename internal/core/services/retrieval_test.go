package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven/mocks"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

func newRetrievalFixture(t *testing.T) (*mocks.MockChunkStore, *runtime.Services, driving.RetrievalService) {
	t.Helper()

	chunks := mocks.NewMockChunkStore()
	chunks.SetSearchResults("art-1", []domain.RetrievedChunk{
		{ChunkIndex: 4, Content: "sobre la densidad", Similarity: 0.62},
		{ChunkIndex: 0, Content: "el hielo flota", Similarity: 0.95},
		{ChunkIndex: 2, Content: "el agua se expande", Similarity: 0.81},
		{ChunkIndex: 7, Content: "la temperatura baja", Similarity: 0.74},
		{ChunkIndex: 1, Content: "ruido irrelevante", Similarity: 0.31},
	})

	services := runtime.NewServices(domain.NewRuntimeConfig("postgres"))
	services.SetEmbeddingService(mocks.NewMockEmbedding(8))

	return chunks, services, NewRetrievalService(chunks, services, 0)
}

func TestRetrieve_FiltersBelowThreshold(t *testing.T) {
	_, _, svc := newRetrievalFixture(t)

	results, err := svc.Retrieve(context.Background(), "art-1", "¿por qué flota el hielo?", 5)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results above threshold, got %d", len(results))
	}
	for _, rc := range results {
		if rc.Similarity < DefaultSimilarityThreshold {
			t.Errorf("chunk %d below threshold: %.2f", rc.ChunkIndex, rc.Similarity)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Error("results not ordered by descending similarity")
		}
	}
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	chunks, _, svc := newRetrievalFixture(t)
	chunks.SetSearchResults("art-1", []domain.RetrievedChunk{
		{ChunkIndex: 0, Similarity: 0.95},
		{ChunkIndex: 1, Similarity: 0.92},
		{ChunkIndex: 2, Similarity: 0.89},
		{ChunkIndex: 3, Similarity: 0.85},
		{ChunkIndex: 4, Similarity: 0.80},
	})

	results, err := svc.Retrieve(context.Background(), "art-1", "densidad", 0)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != DefaultTopK {
		t.Errorf("expected default topK of %d, got %d results", DefaultTopK, len(results))
	}
}

func TestRetrieve_ClampsTopK(t *testing.T) {
	chunks, _, svc := newRetrievalFixture(t)
	chunks.SetSearchResults("art-1", []domain.RetrievedChunk{
		{ChunkIndex: 0, Similarity: 0.96},
		{ChunkIndex: 1, Similarity: 0.94},
		{ChunkIndex: 2, Similarity: 0.91},
		{ChunkIndex: 3, Similarity: 0.88},
		{ChunkIndex: 4, Similarity: 0.84},
		{ChunkIndex: 5, Similarity: 0.79},
	})

	results, err := svc.Retrieve(context.Background(), "art-1", "densidad", 50)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != MaxTopK {
		t.Errorf("expected topK clamped to %d, got %d results", MaxTopK, len(results))
	}
}

func TestRetrieve_EmptyResultIsValid(t *testing.T) {
	_, _, svc := newRetrievalFixture(t)

	results, err := svc.Retrieve(context.Background(), "art-2", "tema sin cubrir", 3)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRetrieve_BlankQuery(t *testing.T) {
	_, _, svc := newRetrievalFixture(t)

	_, err := svc.Retrieve(context.Background(), "art-1", "   ", 3)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRetrieve_EmbeddingUnavailable(t *testing.T) {
	_, services, svc := newRetrievalFixture(t)
	services.SetEmbeddingService(nil)

	_, err := svc.Retrieve(context.Background(), "art-1", "densidad", 3)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestRetrieve_SearchErrorPropagates(t *testing.T) {
	chunks, _, svc := newRetrievalFixture(t)
	chunks.SearchErr = errors.New("connection reset")

	_, err := svc.Retrieve(context.Background(), "art-1", "densidad", 3)
	if err == nil {
		t.Fatal("expected an error")
	}
}
