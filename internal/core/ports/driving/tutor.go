package driving

import (
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// TutorTurn is the result of one tutor dialogue exchange
type TutorTurn struct {
	Message            string                    `json:"message"`
	InterventionType   domain.InterventionType   `json:"interaction_type"`
	CognitiveDimension domain.CognitiveDimension `json:"cognitive_dimension,omitempty"`
	Strategy           string                    `json:"intervention_strategy,omitempty"`
	ChunksUsed         []domain.ChunkRef         `json:"chunks_used,omitempty"`
}

// TutorService runs Socratic tutor dialogue turns over an attempt
type TutorService interface {
	// Respond processes one student message: persists the student turn,
	// retrieves article context, calls the completion model, and persists
	// the tutor turn. Turns on the same attempt are serialized.
	Respond(ctx context.Context, attemptID, studentMessage string) (*TutorTurn, error)

	// Interactions returns the full interaction log of an attempt in
	// chronological order.
	Interactions(ctx context.Context, attemptID string) ([]*domain.Interaction, error)
}

// RetrievalService finds article chunks relevant to a free-text query
type RetrievalService interface {
	// Retrieve embeds the query and returns the most similar chunks of the
	// article above the similarity threshold. No matches is a valid outcome
	// and yields an empty slice, not an error.
	Retrieve(ctx context.Context, articleID, query string, topK int) ([]domain.RetrievedChunk, error)
}
