package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttemptStore = (*AttemptStore)(nil)

// AttemptStore implements driven.AttemptStore using PostgreSQL
type AttemptStore struct {
	db *DB
}

// NewAttemptStore creates a new AttemptStore
func NewAttemptStore(db *DB) *AttemptStore {
	return &AttemptStore{db: db}
}

// Get retrieves an attempt by ID
func (s *AttemptStore) Get(ctx context.Context, id string) (*domain.Attempt, error) {
	query := `
		SELECT id, article_id, student_id, current_section, notebook, status, created_at, updated_at
		FROM attempts
		WHERE id = $1
	`

	var attempt domain.Attempt
	var notebookJSON []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&attempt.ID,
		&attempt.ArticleID,
		&attempt.StudentID,
		&attempt.CurrentSection,
		&notebookJSON,
		&attempt.Status,
		&attempt.CreatedAt,
		&attempt.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(notebookJSON) > 0 {
		if err := json.Unmarshal(notebookJSON, &attempt.Notebook); err != nil {
			return nil, err
		}
	}
	return &attempt, nil
}

// Save creates or updates an attempt
func (s *AttemptStore) Save(ctx context.Context, attempt *domain.Attempt) error {
	notebookJSON, err := json.Marshal(attempt.Notebook)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attempts (id, article_id, student_id, current_section, notebook, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			current_section = EXCLUDED.current_section,
			notebook = EXCLUDED.notebook,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.ArticleID,
		attempt.StudentID,
		attempt.CurrentSection,
		notebookJSON,
		attempt.Status,
		attempt.CreatedAt,
		attempt.UpdatedAt,
	)
	return err
}
