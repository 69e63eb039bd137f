package postgres

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore implements driven.ChunkStore using PostgreSQL with pgvector.
// Embeddings live in the same row as the chunk text; similarity search runs
// in the database via the cosine distance operator.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// SaveBatch inserts chunks in a single transaction
func (s *ChunkStore) SaveBatch(ctx context.Context, chunks []*domain.ArticleChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO article_chunks (id, article_id, chunk_index, content, word_count, page_number, embedding, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				content = EXCLUDED.content,
				word_count = EXCLUDED.word_count,
				page_number = EXCLUDED.page_number,
				embedding = EXCLUDED.embedding
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, chunk := range chunks {
			_, err = stmt.ExecContext(ctx,
				chunk.ID,
				chunk.ArticleID,
				chunk.ChunkIndex,
				chunk.Content,
				chunk.WordCount,
				NullInt(chunk.PageNumber),
				pgvector.NewVector(chunk.Embedding),
				chunk.CreatedAt,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Search returns up to topK chunks of the article whose cosine similarity to
// the query embedding is at least threshold, ordered by similarity
// descending. Cosine similarity is 1 - cosine distance.
func (s *ChunkStore) Search(ctx context.Context, articleID string, embedding []float32, threshold float64, topK int) ([]domain.RetrievedChunk, error) {
	query := `
		SELECT chunk_index, content, 1 - (embedding <=> $2) AS similarity
		FROM article_chunks
		WHERE article_id = $1
		  AND embedding IS NOT NULL
		  AND 1 - (embedding <=> $2) >= $3
		ORDER BY embedding <=> $2
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query, articleID, pgvector.NewVector(embedding), threshold, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		var rc domain.RetrievedChunk
		if err := rows.Scan(&rc.ChunkIndex, &rc.Content, &rc.Similarity); err != nil {
			return nil, err
		}
		results = append(results, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetByArticle retrieves all chunks for an article ordered by chunk index
func (s *ChunkStore) GetByArticle(ctx context.Context, articleID string) ([]*domain.ArticleChunk, error) {
	query := `
		SELECT id, article_id, chunk_index, content, word_count, page_number, embedding, created_at
		FROM article_chunks
		WHERE article_id = $1
		ORDER BY chunk_index ASC
	`

	rows, err := s.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*domain.ArticleChunk
	for rows.Next() {
		var chunk domain.ArticleChunk
		var pageNumber sql.NullInt32
		var embedding pgvector.Vector

		err := rows.Scan(
			&chunk.ID,
			&chunk.ArticleID,
			&chunk.ChunkIndex,
			&chunk.Content,
			&chunk.WordCount,
			&pageNumber,
			&embedding,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		chunk.PageNumber = IntPtr(pageNumber)
		chunk.Embedding = embedding.Slice()
		chunks = append(chunks, &chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// CountByArticle returns the chunk count for an article
func (s *ChunkStore) CountByArticle(ctx context.Context, articleID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_chunks WHERE article_id = $1`, articleID).Scan(&count)
	return count, err
}

// DeleteByArticle deletes all chunks for an article
func (s *ChunkStore) DeleteByArticle(ctx context.Context, articleID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM article_chunks WHERE article_id = $1`, articleID)
	return err
}
