package driven

import (
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// InteractionStore handles the append-only interaction log (PostgreSQL)
type InteractionStore interface {
	// Save appends an interaction. Interactions are never updated or deleted.
	Save(ctx context.Context, interaction *domain.Interaction) error

	// ListByAttempt retrieves all interactions for an attempt in strict
	// chronological (insertion) order.
	ListByAttempt(ctx context.Context, attemptID string) ([]*domain.Interaction, error)

	// ListRecent retrieves the most recent n interactions for an attempt,
	// still in chronological order.
	ListRecent(ctx context.Context, attemptID string, n int) ([]*domain.Interaction, error)
}

// AttemptStore handles work-session persistence (PostgreSQL)
type AttemptStore interface {
	// Get retrieves an attempt by ID
	Get(ctx context.Context, id string) (*domain.Attempt, error)

	// Save creates or updates an attempt
	Save(ctx context.Context, attempt *domain.Attempt) error
}

// ProfileStore handles learner profile reads (PostgreSQL)
type ProfileStore interface {
	// Get retrieves the learner profile for a student.
	// Returns domain.ErrNotFound if none has been recorded yet.
	Get(ctx context.Context, studentID string) (*domain.LearnerProfile, error)
}
