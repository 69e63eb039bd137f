package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

// Ensure tutorService implements TutorService
var _ driving.TutorService = (*tutorService)(nil)

const (
	// historyWindow is how many recent interactions are included in the
	// prompt. The full log stays in the store; the prompt is windowed so it
	// does not grow without bound over a long session.
	historyWindow = 12

	// attemptLockTTL bounds how long a crashed turn can keep an attempt
	// locked.
	attemptLockTTL = 30 * time.Second

	tutorTemperature = 0.7
)

// tutorService runs Socratic dialogue turns. Per attempt, turns are strictly
// ordered: student turn persisted first, then retrieval and completion, then
// the tutor turn. A per-attempt lock keeps concurrent requests on the same
// attempt from interleaving their interaction pairs.
type tutorService struct {
	attemptStore     driven.AttemptStore
	interactionStore driven.InteractionStore
	profileStore     driven.ProfileStore
	retrieval        driving.RetrievalService
	services         *runtime.Services
	lock             driven.AttemptLock
	logger           *slog.Logger
}

// TutorConfig holds dependencies for the tutor service.
type TutorConfig struct {
	AttemptStore     driven.AttemptStore
	InteractionStore driven.InteractionStore
	ProfileStore     driven.ProfileStore
	Retrieval        driving.RetrievalService
	Services         *runtime.Services
	Lock             driven.AttemptLock
	Logger           *slog.Logger
}

// NewTutorService creates a new TutorService.
func NewTutorService(cfg TutorConfig) driving.TutorService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &tutorService{
		attemptStore:     cfg.AttemptStore,
		interactionStore: cfg.InteractionStore,
		profileStore:     cfg.ProfileStore,
		retrieval:        cfg.Retrieval,
		services:         cfg.Services,
		lock:             cfg.Lock,
		logger:           logger,
	}
}

// tutorReply is the structured response requested from the completion model
type tutorReply struct {
	Message            string `json:"message"`
	InteractionType    string `json:"interaction_type"`
	CognitiveDimension string `json:"cognitive_dimension"`
	Strategy           string `json:"intervention_strategy"`
}

// Respond processes one student message.
// The student turn is persisted before any external call so it survives a
// completion failure; if persisting it fails, the caller must not assume
// any part of the turn was saved.
func (s *tutorService) Respond(ctx context.Context, attemptID, studentMessage string) (*driving.TutorTurn, error) {
	if strings.TrimSpace(studentMessage) == "" {
		return nil, domain.ErrInvalidInput
	}

	acquired, err := s.lock.Acquire(ctx, attemptID, attemptLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire attempt lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrAttemptBusy
	}
	defer func() {
		if err := s.lock.Release(ctx, attemptID); err != nil {
			s.logger.Warn("failed to release attempt lock", "attempt_id", attemptID, "error", err)
		}
	}()

	attempt, err := s.attemptStore.Get(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	// Persist the student turn first: never lose what the student wrote,
	// even if the tutor fails to respond.
	studentTurn := &domain.Interaction{
		ID:               domain.GenerateID(),
		AttemptID:        attemptID,
		Role:             domain.RoleStudent,
		Message:          studentMessage,
		NotebookSnapshot: attempt.Notebook,
		CreatedAt:        time.Now(),
	}
	if err := s.interactionStore.Save(ctx, studentTurn); err != nil {
		return nil, fmt.Errorf("save student turn: %w", err)
	}

	chat := s.services.ChatService()
	if chat == nil {
		return nil, domain.ErrChatUnavailable
	}

	// Context retrieval degrades gracefully: an RPC failure and "no chunk
	// cleared the threshold" both mean context-free tutoring, never a
	// failed turn.
	contextChunks, err := s.retrieval.Retrieve(ctx, attempt.ArticleID, studentMessage, DefaultTopK)
	if err != nil {
		s.logger.Warn("context retrieval failed, tutoring without context",
			"attempt_id", attemptID, "error", err)
		contextChunks = nil
	}

	history, err := s.interactionStore.ListRecent(ctx, attemptID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	profile, err := s.profileStore.Get(ctx, attempt.StudentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	resp, err := chat.Complete(ctx, driven.ChatRequest{
		Messages: []driven.Message{
			{Role: "system", Content: tutorSystemPrompt},
			{Role: "user", Content: buildTutorPrompt(attempt, studentMessage, contextChunks, history, profile)},
		},
		Temperature:  tutorTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	turn := s.parseReply(resp.Content, attempt.Notebook, history)

	chunksUsed := make([]domain.ChunkRef, len(contextChunks))
	for i, rc := range contextChunks {
		chunksUsed[i] = domain.ChunkRef{ChunkIndex: rc.ChunkIndex, Similarity: rc.Similarity}
	}
	turn.ChunksUsed = chunksUsed

	tutorInteraction := &domain.Interaction{
		ID:                 domain.GenerateID(),
		AttemptID:          attemptID,
		Role:               domain.RoleTutor,
		Message:            turn.Message,
		InterventionType:   turn.InterventionType,
		CognitiveDimension: turn.CognitiveDimension,
		Strategy:           turn.Strategy,
		NotebookSnapshot:   attempt.Notebook,
		ChunksUsed:         chunksUsed,
		CreatedAt:          time.Now(),
	}
	if err := s.interactionStore.Save(ctx, tutorInteraction); err != nil {
		return nil, fmt.Errorf("save tutor turn: %w", err)
	}

	return turn, nil
}

// Interactions returns the full chronological log for an attempt.
func (s *tutorService) Interactions(ctx context.Context, attemptID string) ([]*domain.Interaction, error) {
	if _, err := s.attemptStore.Get(ctx, attemptID); err != nil {
		return nil, err
	}
	return s.interactionStore.ListByAttempt(ctx, attemptID)
}

// parseReply decodes the model's structured reply. A malformed or
// unclassifiable response falls back to the raw text plus the rule-based
// intervention selection; the turn still succeeds.
func (s *tutorService) parseReply(content string, notebook domain.Notebook, history []*domain.Interaction) *driving.TutorTurn {
	var reply tutorReply
	if err := json.Unmarshal([]byte(content), &reply); err == nil && strings.TrimSpace(reply.Message) != "" {
		interventionType := domain.InterventionType(reply.InteractionType)
		if !interventionType.Valid() {
			interventionType = domain.NextIntervention(notebook, history)
		}
		return &driving.TutorTurn{
			Message:            reply.Message,
			InterventionType:   interventionType,
			CognitiveDimension: domain.CognitiveDimension(reply.CognitiveDimension),
			Strategy:           reply.Strategy,
		}
	}

	s.logger.Warn("unstructured completion response, using rule-based classification")
	return &driving.TutorTurn{
		Message:          strings.TrimSpace(content),
		InterventionType: domain.NextIntervention(notebook, history),
	}
}
