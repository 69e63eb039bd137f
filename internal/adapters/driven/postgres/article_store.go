package postgres

import (
	"context"
	"database/sql"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ArticleStore = (*ArticleStore)(nil)

// ArticleStore implements driven.ArticleStore using PostgreSQL
type ArticleStore struct {
	db *DB
}

// NewArticleStore creates a new ArticleStore
func NewArticleStore(db *DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Save creates or updates an article
func (s *ArticleStore) Save(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (id, title, difficulty, processed, page_count, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			difficulty = EXCLUDED.difficulty,
			processed = EXCLUDED.processed,
			page_count = EXCLUDED.page_count,
			processed_at = EXCLUDED.processed_at
	`

	_, err := s.db.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Difficulty,
		article.Processed,
		article.PageCount,
		article.CreatedAt,
		NullTime(article.ProcessedAt),
	)
	return err
}

// Get retrieves an article by ID
func (s *ArticleStore) Get(ctx context.Context, id string) (*domain.Article, error) {
	query := `
		SELECT id, title, difficulty, processed, page_count, created_at, processed_at
		FROM articles
		WHERE id = $1
	`

	return scanArticle(s.db.QueryRowContext(ctx, query, id))
}

// List retrieves articles ordered by creation time, newest first
func (s *ArticleStore) List(ctx context.Context, limit, offset int) ([]*domain.Article, error) {
	query := `
		SELECT id, title, difficulty, processed, page_count, created_at, processed_at
		FROM articles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		var a domain.Article
		var processedAt sql.NullTime
		err := rows.Scan(&a.ID, &a.Title, &a.Difficulty, &a.Processed, &a.PageCount, &a.CreatedAt, &processedAt)
		if err != nil {
			return nil, err
		}
		a.ProcessedAt = TimePtr(processedAt)
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}

// SetProcessed flips the processed flag. Marking processed records the page
// count and timestamp; clearing it resets both.
func (s *ArticleStore) SetProcessed(ctx context.Context, id string, processed bool, pageCount int) error {
	var query string
	if processed {
		query = `
			UPDATE articles
			SET processed = TRUE, page_count = $2, processed_at = NOW()
			WHERE id = $1
		`
	} else {
		query = `
			UPDATE articles
			SET processed = FALSE, page_count = $2, processed_at = NULL
			WHERE id = $1
		`
	}

	result, err := s.db.ExecContext(ctx, query, id, pageCount)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete deletes an article; chunks, attempts and payloads cascade
func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the total article count
func (s *ArticleStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	return count, err
}

func scanArticle(row *sql.Row) (*domain.Article, error) {
	var a domain.Article
	var processedAt sql.NullTime

	err := row.Scan(&a.ID, &a.Title, &a.Difficulty, &a.Processed, &a.PageCount, &a.CreatedAt, &processedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.ProcessedAt = TimePtr(processedAt)
	return &a, nil
}
