package driving

import (
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// ProblemRequest parameterizes problem generation
type ProblemRequest struct {
	ProblemType     domain.ProblemType        `json:"problem_type"`
	Difficulty      domain.Difficulty         `json:"difficulty"`
	CognitiveTarget domain.CognitiveDimension `json:"cognitive_target,omitempty"`
	ArticleContext  string                    `json:"article_context,omitempty"`
}

// HintRequest parameterizes hint generation for a problem in progress
type HintRequest struct {
	Problem         *domain.ProblemStatement `json:"problem"`
	AttemptSnapshot string                   `json:"attempt_snapshot"`
	HintLevel       int                      `json:"hint_level"` // 1..3
}

// ProblemService generates open-ended STEM problems and hints
type ProblemService interface {
	// Generate produces a problem targeting the student's weakest cognitive
	// dimensions. Provider failures degrade to a pre-authored fallback
	// problem tagged IsFallback; Generate never fails for provider reasons.
	Generate(ctx context.Context, studentID string, req ProblemRequest) (*domain.ProblemStatement, error)

	// GenerateHint produces a short Socratic nudge for a problem in progress.
	// No fallback: provider failures surface to the caller.
	GenerateHint(ctx context.Context, req HintRequest) (string, error)
}
