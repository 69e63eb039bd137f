package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore implements driven.ProfileStore using PostgreSQL.
// Profiles are written by the evaluation pipeline (outside this service);
// this adapter only reads them.
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Get retrieves a learner profile by student ID
func (s *ProfileStore) Get(ctx context.Context, studentID string) (*domain.LearnerProfile, error) {
	query := `
		SELECT student_id, scores, updated_at
		FROM learner_profiles
		WHERE student_id = $1
	`

	var profile domain.LearnerProfile
	var scoresJSON []byte

	err := s.db.QueryRowContext(ctx, query, studentID).Scan(
		&profile.StudentID,
		&scoresJSON,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(scoresJSON) > 0 {
		if err := json.Unmarshal(scoresJSON, &profile.Scores); err != nil {
			return nil, err
		}
	}
	return &profile, nil
}
