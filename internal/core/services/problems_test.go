package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven/mocks"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

const generatedProblemJSON = `{
	"title": "El ascensor lento",
	"context": "Un edificio de diez pisos tiene un ascensor que tarda demasiado.",
	"challenge": "Propón cómo medir dónde se pierde el tiempo y qué cambiarías.",
	"scaffolding": {
		"inicial": "¿Qué medirías primero?",
		"intermedio": "¿Cómo separarías espera de viaje?",
		"avanzado": "¿Qué modelo usarías para predecir mejoras?"
	},
	"expected_approaches": ["medición por etapas", "modelo de colas"],
	"metacognitive_prompts": ["¿Qué suposición hiciste sin darte cuenta?"]
}`

func newProblemFixture(t *testing.T) (*mocks.MockProfileStore, *mocks.MockChat, *runtime.Services, driving.ProblemService) {
	t.Helper()

	profiles := mocks.NewMockProfileStore()
	chat := mocks.NewMockChat()
	services := runtime.NewServices(domain.NewRuntimeConfig("postgres"))
	services.SetChatService(chat)

	return profiles, chat, services, NewProblemService(profiles, services, nil)
}

func TestGenerate_Success(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)

	chat.Script(generatedProblemJSON)
	problem, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
		ProblemType: domain.ProblemFisico,
		Difficulty:  domain.DifficultyDificil,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if problem.IsFallback {
		t.Error("successfully generated problem must not be tagged as fallback")
	}
	if problem.Title != "El ascensor lento" {
		t.Errorf("unexpected title: %s", problem.Title)
	}
	if problem.ProblemType != domain.ProblemFisico {
		t.Errorf("expected problem type fisico, got %s", problem.ProblemType)
	}
	if problem.Difficulty != domain.DifficultyDificil {
		t.Errorf("expected difficulty dificil, got %s", problem.Difficulty)
	}
	if problem.Scaffolding.Inicial == "" || problem.Scaffolding.Avanzado == "" {
		t.Error("expected scaffolding levels to be populated")
	}
}

func TestGenerate_FallbackOnCompletionError(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)
	chat.Err = errors.New("rate limited")

	problem, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
		ProblemType: domain.ProblemMatematico,
	})
	if err != nil {
		t.Fatalf("Generate() must not fail on provider errors, got: %v", err)
	}
	if !problem.IsFallback {
		t.Error("expected fallback problem to be tagged is_fallback")
	}
	if problem.ProblemType != domain.ProblemMatematico {
		t.Errorf("fallback must honor the requested type, got %s", problem.ProblemType)
	}
	if problem.Difficulty != domain.DifficultyMedio {
		t.Errorf("expected default difficulty medio, got %s", problem.Difficulty)
	}
}

func TestGenerate_FallbackWhenChatUnavailable(t *testing.T) {
	profiles := mocks.NewMockProfileStore()
	services := runtime.NewServices(domain.NewRuntimeConfig("postgres"))
	svc := NewProblemService(profiles, services, nil)

	for _, pt := range []domain.ProblemType{domain.ProblemMatematico, domain.ProblemFisico, domain.ProblemIntegrado} {
		for _, diff := range []domain.Difficulty{domain.DifficultyFacil, domain.DifficultyMedio, domain.DifficultyDificil} {
			problem, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
				ProblemType: pt,
				Difficulty:  diff,
			})
			if err != nil {
				t.Fatalf("Generate(%s, %s) error: %v", pt, diff, err)
			}
			if !problem.IsFallback {
				t.Errorf("Generate(%s, %s): expected fallback", pt, diff)
			}
			if problem.Title == "" || problem.Challenge == "" {
				t.Errorf("Generate(%s, %s): incomplete fallback problem", pt, diff)
			}
			if problem.Scaffolding.Inicial == "" || problem.Scaffolding.Intermedio == "" || problem.Scaffolding.Avanzado == "" {
				t.Errorf("Generate(%s, %s): fallback missing scaffolding", pt, diff)
			}
			if problem.ProblemType != pt || problem.Difficulty != diff {
				t.Errorf("Generate(%s, %s): fallback mislabeled as %s/%s", pt, diff, problem.ProblemType, problem.Difficulty)
			}
		}
	}
}

func TestGenerate_FallbackOnMalformedCompletion(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)
	chat.Script(`{"title": ""`)

	problem, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
		ProblemType: domain.ProblemIntegrado,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !problem.IsFallback {
		t.Error("malformed completion must degrade to a fallback problem")
	}
}

func TestGenerate_InvalidProblemType(t *testing.T) {
	_, _, _, svc := newProblemFixture(t)

	_, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
		ProblemType: "filosofico",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerate_TargetsWeakestDimensions(t *testing.T) {
	profiles, chat, _, svc := newProblemFixture(t)
	profiles.Put(&domain.LearnerProfile{
		StudentID: "stu-1",
		Scores: map[domain.CognitiveDimension]float64{
			domain.DimensionObservacion:     80,
			domain.DimensionHipotesis:      30,
			domain.DimensionExperimentacion: 70,
			domain.DimensionAnalisis:        20,
			domain.DimensionComunicacion:   60,
		},
	})

	chat.Script(generatedProblemJSON)
	problem, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
		ProblemType: domain.ProblemIntegrado,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	want := []domain.CognitiveDimension{domain.DimensionAnalisis, domain.DimensionHipotesis}
	if len(problem.CognitiveTargets) != len(want) {
		t.Fatalf("expected %d targets, got %v", len(want), problem.CognitiveTargets)
	}
	for i := range want {
		if problem.CognitiveTargets[i] != want[i] {
			t.Errorf("target %d: expected %s, got %s", i, want[i], problem.CognitiveTargets[i])
		}
	}
}

func TestGenerate_ExplicitTargetComesFirst(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)

	chat.Script(generatedProblemJSON)
	problem, err := svc.Generate(context.Background(), "stu-1", driving.ProblemRequest{
		ProblemType:     domain.ProblemMatematico,
		CognitiveTarget: domain.DimensionComunicacion,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(problem.CognitiveTargets) == 0 || problem.CognitiveTargets[0] != domain.DimensionComunicacion {
		t.Errorf("expected explicit target first, got %v", problem.CognitiveTargets)
	}
}

func TestGenerateHint(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)
	problem := &domain.ProblemStatement{Title: "El ascensor lento", Challenge: "Mide y mejora"}

	chat.Script("¿Qué parte del recorrido aún no has cronometrado?")
	hint, err := svc.GenerateHint(context.Background(), driving.HintRequest{
		Problem:         problem,
		AttemptSnapshot: "He medido la espera en el piso 1.",
		HintLevel:       2,
	})
	if err != nil {
		t.Fatalf("GenerateHint() error: %v", err)
	}
	if hint == "" {
		t.Error("expected a non-empty hint")
	}
}

func TestGenerateHint_RequiresProblem(t *testing.T) {
	_, _, _, svc := newProblemFixture(t)

	_, err := svc.GenerateHint(context.Background(), driving.HintRequest{HintLevel: 1})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateHint_NoFallback(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)
	chat.Err = errors.New("upstream 503")

	_, err := svc.GenerateHint(context.Background(), driving.HintRequest{
		Problem:   &domain.ProblemStatement{Title: "t", Challenge: "c"},
		HintLevel: 1,
	})
	if err == nil {
		t.Fatal("hint generation must surface provider failures")
	}
}

func TestGenerateHint_EmptyCompletion(t *testing.T) {
	_, chat, _, svc := newProblemFixture(t)
	chat.Script("   ")

	_, err := svc.GenerateHint(context.Background(), driving.HintRequest{
		Problem:   &domain.ProblemStatement{Title: "t", Challenge: "c"},
		HintLevel: 1,
	})
	if !errors.Is(err, domain.ErrMalformedCompletion) {
		t.Fatalf("expected ErrMalformedCompletion, got %v", err)
	}
}
