package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

// Ensure problemService implements ProblemService
var _ driving.ProblemService = (*problemService)(nil)

const problemTemperature = 0.9

// problemService generates open-ended STEM problems targeting the learner's
// weakest cognitive dimensions. When the completion provider is unavailable
// or fails, generation degrades to a pre-authored catalog problem so the
// learner always gets something to work on.
type problemService struct {
	profileStore driven.ProfileStore
	services     *runtime.Services
	logger       *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewProblemService creates a new ProblemService.
func NewProblemService(profileStore driven.ProfileStore, services *runtime.Services, logger *slog.Logger) driving.ProblemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &problemService{
		profileStore: profileStore,
		services:     services,
		logger:       logger,
		rng:          rand.New(rand.NewSource(rand.Int63())),
	}
}

// problemParams carries the resolved generation parameters
type problemParams struct {
	problemType    domain.ProblemType
	difficulty     domain.Difficulty
	targets        []domain.CognitiveDimension
	articleContext string
}

// generatedProblem is the structured response requested from the model
type generatedProblem struct {
	Title                string             `json:"title"`
	Context              string             `json:"context"`
	Challenge            string             `json:"challenge"`
	Scaffolding          domain.Scaffolding `json:"scaffolding"`
	ExpectedApproaches   []string           `json:"expected_approaches"`
	MetacognitivePrompts []string           `json:"metacognitive_prompts"`
}

// Generate produces a problem for the student. Provider and parse failures
// fall back to the catalog; only invalid input is an error.
func (s *problemService) Generate(ctx context.Context, studentID string, req driving.ProblemRequest) (*domain.ProblemStatement, error) {
	if !req.ProblemType.Valid() {
		return nil, fmt.Errorf("problem type %q: %w", req.ProblemType, domain.ErrInvalidInput)
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedio
	}

	profile, err := s.profileStore.Get(ctx, studentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	targets := profile.WeakestDimensions(2)
	if req.CognitiveTarget != "" {
		targets = prependDimension(targets, req.CognitiveTarget)
	}

	params := problemParams{
		problemType:    req.ProblemType,
		difficulty:     difficulty,
		targets:        targets,
		articleContext: req.ArticleContext,
	}

	chat := s.services.ChatService()
	if chat == nil {
		s.logger.Warn("chat service unavailable, using fallback problem", "student_id", studentID)
		return s.fallbackProblem(params), nil
	}

	resp, err := chat.Complete(ctx, driven.ChatRequest{
		Messages: []driven.Message{
			{Role: "system", Content: problemSystemPrompt},
			{Role: "user", Content: buildProblemPrompt(params)},
		},
		Temperature:  problemTemperature,
		JSONResponse: true,
	})
	if err != nil {
		s.logger.Warn("problem generation failed, using fallback", "student_id", studentID, "error", err)
		return s.fallbackProblem(params), nil
	}

	var generated generatedProblem
	if err := json.Unmarshal([]byte(resp.Content), &generated); err != nil ||
		generated.Title == "" || generated.Challenge == "" {
		s.logger.Warn("malformed generated problem, using fallback", "student_id", studentID)
		return s.fallbackProblem(params), nil
	}

	return &domain.ProblemStatement{
		Title:                generated.Title,
		Context:              generated.Context,
		Challenge:            generated.Challenge,
		Scaffolding:          generated.Scaffolding,
		ExpectedApproaches:   generated.ExpectedApproaches,
		MetacognitivePrompts: generated.MetacognitivePrompts,
		ProblemType:          params.problemType,
		Difficulty:           params.difficulty,
		CognitiveTargets:     params.targets,
		IsFallback:           false,
	}, nil
}

// GenerateHint produces a short Socratic nudge. No fallback: a provider
// failure surfaces to the caller.
func (s *problemService) GenerateHint(ctx context.Context, req driving.HintRequest) (string, error) {
	if req.Problem == nil {
		return "", fmt.Errorf("hint request without problem: %w", domain.ErrInvalidInput)
	}
	level := req.HintLevel
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}

	chat := s.services.ChatService()
	if chat == nil {
		return "", domain.ErrChatUnavailable
	}

	resp, err := chat.Complete(ctx, driven.ChatRequest{
		Messages: []driven.Message{
			{Role: "system", Content: hintSystemPrompt},
			{Role: "user", Content: buildHintPrompt(req.Problem, req.AttemptSnapshot, level)},
		},
		Temperature: tutorTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("hint completion: %w", err)
	}

	hint := strings.TrimSpace(resp.Content)
	if hint == "" {
		return "", domain.ErrMalformedCompletion
	}
	return hint, nil
}

// fallbackProblem selects uniformly at random from the pre-authored catalog
func (s *problemService) fallbackProblem(params problemParams) *domain.ProblemStatement {
	catalog := fallbackCatalog[params.problemType]
	if len(catalog) == 0 {
		catalog = fallbackCatalog[domain.ProblemIntegrado]
	}

	s.mu.Lock()
	pick := catalog[s.rng.Intn(len(catalog))]
	s.mu.Unlock()

	pick.ProblemType = params.problemType
	pick.Difficulty = params.difficulty
	pick.CognitiveTargets = params.targets
	pick.IsFallback = true
	return &pick
}

func prependDimension(targets []domain.CognitiveDimension, dim domain.CognitiveDimension) []domain.CognitiveDimension {
	out := []domain.CognitiveDimension{dim}
	for _, t := range targets {
		if t != dim {
			out = append(out, t)
		}
	}
	return out
}
