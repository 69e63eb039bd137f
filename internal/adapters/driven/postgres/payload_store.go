package postgres

import (
	"context"
	"database/sql"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PayloadStore = (*PayloadStore)(nil)

// PayloadStore implements driven.PayloadStore using PostgreSQL.
// Raw uploads are kept until the ingestion worker has consumed them, so a
// queued ingestion survives a process restart.
type PayloadStore struct {
	db *DB
}

// NewPayloadStore creates a new PayloadStore
func NewPayloadStore(db *DB) *PayloadStore {
	return &PayloadStore{db: db}
}

// SavePayload stores (or replaces) the raw payload for an article
func (s *PayloadStore) SavePayload(ctx context.Context, articleID, contentType string, data []byte) error {
	query := `
		INSERT INTO article_payloads (article_id, content_type, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id) DO UPDATE SET
			content_type = EXCLUDED.content_type,
			data = EXCLUDED.data,
			created_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, articleID, contentType, data)
	return err
}

// GetPayload retrieves the raw payload and its content type
func (s *PayloadStore) GetPayload(ctx context.Context, articleID string) ([]byte, string, error) {
	var data []byte
	var contentType string

	err := s.db.QueryRowContext(ctx,
		`SELECT data, content_type FROM article_payloads WHERE article_id = $1`,
		articleID,
	).Scan(&data, &contentType)
	if err == sql.ErrNoRows {
		return nil, "", domain.ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

// DeletePayload removes the stored payload
func (s *PayloadStore) DeletePayload(ctx context.Context, articleID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM article_payloads WHERE article_id = $1`, articleID)
	return err
}
