package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.InteractionStore = (*InteractionStore)(nil)

// InteractionStore implements driven.InteractionStore using PostgreSQL.
// The interactions table is append-only; rows are never updated.
type InteractionStore struct {
	db *DB
}

// NewInteractionStore creates a new InteractionStore
func NewInteractionStore(db *DB) *InteractionStore {
	return &InteractionStore{db: db}
}

// Save appends one interaction
func (s *InteractionStore) Save(ctx context.Context, interaction *domain.Interaction) error {
	snapshotJSON, err := json.Marshal(interaction.NotebookSnapshot)
	if err != nil {
		return err
	}
	var chunksJSON []byte
	if len(interaction.ChunksUsed) > 0 {
		chunksJSON, err = json.Marshal(interaction.ChunksUsed)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO interactions (id, attempt_id, role, message, interaction_type, cognitive_dimension, intervention_strategy, context_snapshot, chunks_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.db.ExecContext(ctx, query,
		interaction.ID,
		interaction.AttemptID,
		interaction.Role,
		interaction.Message,
		string(interaction.InterventionType),
		string(interaction.CognitiveDimension),
		interaction.Strategy,
		snapshotJSON,
		chunksJSON,
		interaction.CreatedAt,
	)
	return err
}

// ListByAttempt retrieves the full chronological log for an attempt
func (s *InteractionStore) ListByAttempt(ctx context.Context, attemptID string) ([]*domain.Interaction, error) {
	query := `
		SELECT id, attempt_id, role, message, interaction_type, cognitive_dimension, intervention_strategy, context_snapshot, chunks_used, created_at
		FROM interactions
		WHERE attempt_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInteractions(rows)
}

// ListRecent retrieves the last n interactions in chronological order
func (s *InteractionStore) ListRecent(ctx context.Context, attemptID string, n int) ([]*domain.Interaction, error) {
	query := `
		SELECT id, attempt_id, role, message, interaction_type, cognitive_dimension, intervention_strategy, context_snapshot, chunks_used, created_at
		FROM (
			SELECT id, attempt_id, role, message, interaction_type, cognitive_dimension, intervention_strategy, context_snapshot, chunks_used, created_at
			FROM interactions
			WHERE attempt_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, attemptID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInteractions(rows)
}

func scanInteractions(rows *sql.Rows) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	for rows.Next() {
		var in domain.Interaction
		var interventionType, dimension, strategy sql.NullString
		var snapshotJSON, chunksJSON []byte

		err := rows.Scan(
			&in.ID,
			&in.AttemptID,
			&in.Role,
			&in.Message,
			&interventionType,
			&dimension,
			&strategy,
			&snapshotJSON,
			&chunksJSON,
			&in.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		in.InterventionType = domain.InterventionType(interventionType.String)
		in.CognitiveDimension = domain.CognitiveDimension(dimension.String)
		in.Strategy = strategy.String

		if len(snapshotJSON) > 0 {
			if err := json.Unmarshal(snapshotJSON, &in.NotebookSnapshot); err != nil {
				return nil, err
			}
		}
		if len(chunksJSON) > 0 {
			if err := json.Unmarshal(chunksJSON, &in.ChunksUsed); err != nil {
				return nil, err
			}
		}

		interactions = append(interactions, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return interactions, nil
}
